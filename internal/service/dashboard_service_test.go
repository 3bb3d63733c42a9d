package service

import (
	"strings"
	"testing"

	"github.com/jengzang/prevalence-backend-go/internal/models"
)

func f64(v float64) *float64 { return &v }

func testDataset() *models.Dataset {
	return &models.Dataset{
		PracticeInfo: map[string]models.PracticeInfo{
			"P1": {Name: "Riverside Surgery", Latitude: f64(51.0), Longitude: f64(-2.5)},
			"P2": {Name: "Hill View Practice", Latitude: f64(51.4), Longitude: f64(-2.0)},
			"P3": {Name: "Market Street Surgery", Latitude: f64(51.1), Longitude: f64(-1.6)},
			"P4": {Name: "No Coordinates Practice"},
		},
		ConditionTotals: map[string]models.ConditionTotals{
			"Stroke":   {TotalPatients: 245, PrevalencePer1000: f64(24.5)},
			"Asthma":   {TotalPatients: 300, PrevalencePer1000: f64(30), PrevalenceOver50Per1000: f64(55)},
			"Dementia": {TotalPatients: 0},
		},
		ConditionData: map[string]map[string]models.ConditionMetric{
			"Stroke": {
				"P1": {Patients: 120, PrevalencePer1000: f64(25)},
				"P2": {Patients: 80, PrevalencePer1000: f64(18)},
				"P3": {Patients: 45, PrevalencePer1000: f64(31)},
			},
			"Asthma": {
				"P1": {Patients: 200, PrevalencePer1000: f64(40)},
				"P4": {Patients: 100, PrevalencePer1000: f64(20)}, // No coordinates: never a feature
			},
			"Dementia": {},
		},
	}
}

func loadedController(t *testing.T) *Controller {
	t.Helper()
	c := NewController(960, 720, 10)
	if err := c.Load(testDataset()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return c
}

func TestLoadSelectsFirstCondition(t *testing.T) {
	c := loadedController(t)

	conditions, active := c.Conditions()
	want := []string{"Asthma", "Dementia", "Stroke"}
	if len(conditions) != 3 {
		t.Fatalf("got %d conditions, want 3", len(conditions))
	}
	for i, name := range want {
		if conditions[i] != name {
			t.Errorf("condition %d = %q, want %q (lexicographic)", i, conditions[i], name)
		}
	}
	if active != "Asthma" {
		t.Errorf("active condition = %q, want first in sort order", active)
	}
	if c.State() != StateSelected {
		t.Errorf("state = %v, want StateSelected", c.State())
	}
}

func TestLoadRejectsEmptyDataset(t *testing.T) {
	c := NewController(960, 720, 10)
	err := c.Load(&models.Dataset{
		PracticeInfo:    map[string]models.PracticeInfo{},
		ConditionTotals: map[string]models.ConditionTotals{},
		ConditionData:   map[string]map[string]models.ConditionMetric{},
	})
	if err == nil {
		t.Error("expected error for a dataset without conditions")
	}
	if c.State() != StateUninitialized {
		t.Error("failed load must leave the controller uninitialized")
	}
}

func TestFeatureDerivationRule(t *testing.T) {
	c := loadedController(t)

	// Asthma: P1 has coordinates and data; P4 has data but no
	// coordinates and is silently omitted
	_, _, table, _ := c.Dashboard()
	if table.TotalRows != 1 {
		t.Fatalf("Asthma features = %d, want 1", table.TotalRows)
	}
	if table.Rows[0].PracticeID != "P1" {
		t.Errorf("feature = %s, want P1", table.Rows[0].PracticeID)
	}
}

func TestSelectRecomputesViews(t *testing.T) {
	c := loadedController(t)

	if err := c.Select("Stroke"); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	active, cards, table, legend := c.Dashboard()
	if active != "Stroke" {
		t.Errorf("active = %q, want Stroke", active)
	}
	if table.TotalRows != 3 {
		t.Errorf("Stroke features = %d, want 3", table.TotalRows)
	}
	// Table sorted by patients descending
	if table.Rows[0].PracticeID != "P1" || table.Rows[2].PracticeID != "P3" {
		t.Errorf("unexpected sort order: %v", table.Rows)
	}
	// Score cards carry the stored totals verbatim, formatted
	if cards[0].Value != "245" {
		t.Errorf("total patients card = %q, want 245", cards[0].Value)
	}
	if cards[2].Value != "–" {
		t.Errorf("missing subset rate card = %q, want placeholder", cards[2].Value)
	}
	if len(legend.Rows) == 0 {
		t.Error("expected legend rows for three visible points")
	}

	svg := c.MapSVG()
	if !strings.Contains(svg, "<polygon points=") {
		t.Error("spatial view should render cells for Stroke")
	}
}

func TestSelectUnknownCondition(t *testing.T) {
	c := loadedController(t)
	if err := c.Select("Gout"); err == nil {
		t.Error("expected error for unknown condition")
	}
	if _, active := c.Conditions(); active != "Asthma" {
		t.Errorf("failed select must not change the active condition, got %q", active)
	}
}

func TestSelectResetsPagination(t *testing.T) {
	c := loadedController(t)

	// Build a dataset big enough for multiple pages
	ds := testDataset()
	metrics := map[string]models.ConditionMetric{}
	for i := 0; i < 23; i++ {
		id := string(rune('A'+i%26)) + string(rune('0'+i/26))
		ds.PracticeInfo[id] = models.PracticeInfo{Name: id, Latitude: f64(51.0 + float64(i)*0.01), Longitude: f64(-2.0)}
		metrics[id] = models.ConditionMetric{Patients: 100 - i, PrevalencePer1000: f64(float64(i))}
	}
	ds.ConditionData["Stroke"] = metrics
	if err := c.Load(ds); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if err := c.Select("Stroke"); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if err := c.Navigate("next", 0); err != nil {
		t.Fatalf("Navigate returned error: %v", err)
	}
	_, _, table, _ := c.Dashboard()
	if table.Pagination == nil || table.Pagination.CurrentPage != 2 {
		t.Fatalf("expected page 2, got %+v", table.Pagination)
	}

	// Changing condition discards the cursor
	if err := c.Select("Asthma"); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if err := c.Select("Stroke"); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	_, _, table, _ = c.Dashboard()
	if table.Pagination == nil || table.Pagination.CurrentPage != 1 {
		t.Errorf("condition change must reset to page 1, got %+v", table.Pagination)
	}
}

func TestZeroFeatureCondition(t *testing.T) {
	c := loadedController(t)

	if err := c.Select("Dementia"); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	_, _, table, legend := c.Dashboard()
	if len(table.Rows) != 0 {
		t.Errorf("expected empty table, got %d rows", len(table.Rows))
	}
	if table.Pagination != nil {
		t.Error("pagination control must be omitted for an empty table")
	}
	if len(legend.Rows) != 0 {
		t.Error("expected no legend for zero visible points")
	}

	svg := c.MapSVG()
	if strings.Contains(svg, "<polygon") {
		t.Error("zero visible points must render an empty spatial view")
	}
}
