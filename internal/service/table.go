package service

import (
	"sort"

	"github.com/jengzang/prevalence-backend-go/internal/models"
	"github.com/jengzang/prevalence-backend-go/internal/render"
)

// DefaultPageSize is the fixed table page size
const DefaultPageSize = 10

// SortFeatures orders features by patient count descending. The sort
// is stable: ties keep their original encounter order, so re-renders
// of the same data are reproducible.
func SortFeatures(features []models.Feature) {
	sort.SliceStable(features, func(i, j int) bool {
		return features[i].Patients > features[j].Patients
	})
}

// Pager is the table pagination cursor, owned by the Controller and
// reset on every condition change
type Pager struct {
	page     int // 1-based
	pageSize int
	total    int // Total row count
}

// NewPager creates a cursor at page 1 over total rows
func NewPager(total, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{page: 1, pageSize: pageSize, total: total}
}

// TotalPages returns ceil(total / pageSize), at least 1
func (p *Pager) TotalPages() int {
	if p.total <= 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

// Page returns the current 1-based page
func (p *Pager) Page() int {
	return p.page
}

// Goto jumps to an arbitrary page. Requests before page 1 or past the
// last page are no-ops leaving the current page unchanged.
func (p *Pager) Goto(page int) {
	if page < 1 || page > p.TotalPages() {
		return
	}
	p.page = page
}

// Next advances one page, a no-op on the last page
func (p *Pager) Next() { p.Goto(p.page + 1) }

// Prev moves back one page, a no-op on the first page
func (p *Pager) Prev() { p.Goto(p.page - 1) }

// First jumps to the first page
func (p *Pager) First() { p.page = 1 }

// Last jumps to the last page
func (p *Pager) Last() { p.page = p.TotalPages() }

// Slice returns the half-open row range [lo, hi) of the current page
func (p *Pager) Slice() (int, int) {
	lo := (p.page - 1) * p.pageSize
	hi := lo + p.pageSize
	if lo > p.total {
		lo = p.total
	}
	if hi > p.total {
		hi = p.total
	}
	return lo, hi
}

// BuildTableView formats the current page of the sorted feature list.
// The pagination control is omitted entirely when everything fits on
// one page.
func BuildTableView(features []models.Feature, pager *Pager) models.TableView {
	view := models.TableView{TotalRows: len(features)}

	lo, hi := pager.Slice()
	for _, f := range features[lo:hi] {
		view.Rows = append(view.Rows, models.TableRow{
			PracticeID:       f.PracticeID,
			Name:             f.Name,
			Patients:         render.Count(f.Patients),
			Prevalence:       render.Rate(f.PrevalencePer1000),
			PrevalenceOver50: render.Rate(f.PrevalenceOver50Per1000),
		})
	}

	if totalPages := pager.TotalPages(); totalPages > 1 {
		view.Pagination = &models.Pagination{
			CurrentPage: pager.Page(),
			TotalPages:  totalPages,
			PageSize:    pager.pageSize,
			HasPrev:     pager.Page() > 1,
			HasNext:     pager.Page() < totalPages,
		}
	}

	return view
}
