package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/golang/geo/s2"
	"github.com/jengzang/prevalence-backend-go/internal/models"
	"github.com/jengzang/prevalence-backend-go/internal/render"
	"github.com/jengzang/prevalence-backend-go/internal/spatial"
)

// State of the dashboard controller
type State int

const (
	StateUninitialized State = iota
	StateLoaded
	StateSelected
)

const fitPadding = 20

// Controller owns all mutable dashboard state: the active condition,
// the derived feature list and the pagination cursor. The dataset is
// immutable after Load. Every event (load, selection, page move) is
// handled to completion under one mutex: recompute, then rebuild the
// cards, table and spatial view, in that order, before returning.
type Controller struct {
	mu sync.Mutex

	state      State
	ds         *models.Dataset
	conditions []string
	active     string

	width, height float64
	pageSize      int
	proj          *spatial.Projection

	features []models.Feature
	pager    *Pager
	cards    []models.ScoreCard
	table    models.TableView
	mapView  render.MapView
}

// NewController creates an uninitialized controller for a drawing
// surface of the given size
func NewController(width, height float64, pageSize int) *Controller {
	return &Controller{
		state:    StateUninitialized,
		width:    width,
		height:   height,
		pageSize: pageSize,
	}
}

// Load installs the dataset, fits the projection over the full
// geocoded practice set, selects the first condition in lexicographic
// order and runs a full recompute. A dataset without conditions is a
// surfaced error.
func (c *Controller) Load(ds *models.Dataset) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conditions := make([]string, 0, len(ds.ConditionTotals))
	for name := range ds.ConditionTotals {
		conditions = append(conditions, name)
	}
	if len(conditions) == 0 {
		return fmt.Errorf("dataset contains no conditions")
	}
	sort.Strings(conditions)

	// Fix the frame of reference once: the projection fits the whole
	// practice set, so it does not jitter between conditions
	var coords []s2.LatLng
	var centroidLng float64
	for _, info := range ds.PracticeInfo {
		if info.HasCoordinates() {
			coords = append(coords, s2.LatLngFromDegrees(*info.Latitude, *info.Longitude))
			centroidLng += *info.Longitude
		}
	}
	if len(coords) > 0 {
		centroidLng /= float64(len(coords))
	}
	proj := spatial.NewProjection(centroidLng)
	proj.Fit(coords, c.width, c.height, fitPadding)

	c.ds = ds
	c.conditions = conditions
	c.proj = proj
	c.state = StateLoaded

	return c.selectCondition(conditions[0])
}

// Select switches the active condition and recomputes every view
// synchronously. Unknown conditions are a surfaced error.
func (c *Controller) Select(condition string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateUninitialized {
		return fmt.Errorf("controller not loaded")
	}
	if _, ok := c.ds.ConditionTotals[condition]; !ok {
		return fmt.Errorf("unknown condition %q", condition)
	}

	return c.selectCondition(condition)
}

// selectCondition discards the previous feature list and cursor,
// derives features for the new condition and rebuilds score cards,
// table, pagination and spatial view, in that order. Caller holds mu.
func (c *Controller) selectCondition(condition string) error {
	c.active = condition
	c.features = c.deriveFeatures(condition)
	SortFeatures(c.features)
	c.pager = NewPager(len(c.features), c.pageSize)

	totals := c.ds.ConditionTotals[condition]
	c.cards = []models.ScoreCard{
		{Label: "Total patients", Value: render.Count(totals.TotalPatients)},
		{Label: "Prevalence per 1,000", Value: render.Rate(totals.PrevalencePer1000)},
		{Label: "Prevalence per 1,000 (50+)", Value: render.Rate(totals.PrevalenceOver50Per1000)},
	}
	c.table = BuildTableView(c.features, c.pager)
	c.mapView = render.BuildMapView(c.features, c.proj, c.width, c.height)

	c.state = StateSelected
	return nil
}

// deriveFeatures applies the feature rule: a practice contributes one
// feature iff it has coordinates and a metric entry for the condition.
// Everything else is silently omitted; that is normal, not an error.
func (c *Controller) deriveFeatures(condition string) []models.Feature {
	metrics := c.ds.ConditionData[condition]

	ids := make([]string, 0, len(metrics))
	for id := range metrics {
		ids = append(ids, id)
	}
	// Stable encounter order across recomputes of the same dataset
	sort.Strings(ids)

	var features []models.Feature
	for _, id := range ids {
		info, ok := c.ds.PracticeInfo[id]
		if !ok || !info.HasCoordinates() {
			continue
		}
		m := metrics[id]
		features = append(features, models.Feature{
			PracticeID:              id,
			Name:                    info.Name,
			Latitude:                *info.Latitude,
			Longitude:               *info.Longitude,
			Patients:                m.Patients,
			PrevalencePer1000:       m.PrevalencePer1000,
			PrevalenceOver50Per1000: m.PrevalenceOver50Per1000,
		})
	}
	return features
}

// Navigate moves the table cursor. Out-of-range requests are no-ops.
// Only the table view is rebuilt; features and the spatial view are
// untouched by pagination.
func (c *Controller) Navigate(action string, page int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSelected {
		return fmt.Errorf("no condition selected")
	}

	switch action {
	case "first":
		c.pager.First()
	case "prev":
		c.pager.Prev()
	case "next":
		c.pager.Next()
	case "last":
		c.pager.Last()
	case "goto":
		c.pager.Goto(page)
	default:
		return fmt.Errorf("unknown page action %q", action)
	}

	c.table = BuildTableView(c.features, c.pager)
	return nil
}

// State returns the current controller state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Conditions returns the sorted condition list and the active one
func (c *Controller) Conditions() ([]string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.conditions...), c.active
}

// Dashboard returns the current score cards, table view and legend
func (c *Controller) Dashboard() (string, []models.ScoreCard, models.TableView, models.Legend) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.cards, c.table, c.mapView.Legend
}

// MapSVG renders the current spatial view
func (c *Controller) MapSVG() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return render.RenderSVG(c.mapView)
}
