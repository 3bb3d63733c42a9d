package models

// Feature is the render-time unit: one geocoded practice with data for
// the active condition. Derived on every condition change, never persisted.
type Feature struct {
	PracticeID              string   `json:"practice_id"`
	Name                    string   `json:"name"`
	Latitude                float64  `json:"latitude"`
	Longitude               float64  `json:"longitude"`
	Patients                int      `json:"patients"`
	PrevalencePer1000       *float64 `json:"prevalence_per_1000"`
	PrevalenceOver50Per1000 *float64 `json:"prevalence_over50_per_1000"`
}

// ScoreCard represents one formatted national figure
type ScoreCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TableRow represents one formatted row of the practice table
type TableRow struct {
	PracticeID       string `json:"practice_id"`
	Name             string `json:"name"`
	Patients         string `json:"patients"`
	Prevalence       string `json:"prevalence"`
	PrevalenceOver50 string `json:"prevalence_over50"` // Placeholder glyph when the value is unreported
}

// Pagination represents the table pagination control.
// Omitted from the view entirely when total pages <= 1.
type Pagination struct {
	CurrentPage int  `json:"current_page"` // 1-based
	TotalPages  int  `json:"total_pages"`
	PageSize    int  `json:"page_size"`
	HasPrev     bool `json:"has_prev"` // false exactly on the first page
	HasNext     bool `json:"has_next"` // false exactly on the last page
}

// TableView represents the current page of the practice table
type TableView struct {
	Rows       []TableRow  `json:"rows"`
	TotalRows  int         `json:"total_rows"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// LegendRow represents one step of the color legend
type LegendRow struct {
	Color string  `json:"color"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Label string  `json:"label"`
}

// Legend represents the quantile color legend, rebuilt with the scale
type Legend struct {
	Rows []LegendRow `json:"rows"`
}
