package models

// PracticeInfo represents one entry of the practice directory
type PracticeInfo struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`  // nil when the postcode had no lookup match
	Longitude *float64 `json:"longitude"` // nil when the postcode had no lookup match
}

// HasCoordinates reports whether the practice was geocoded
func (p PracticeInfo) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// ConditionMetric represents one practice's figures for one condition
type ConditionMetric struct {
	Patients                int      `json:"patients"`                   // Always > 0; zero-patient practices are absent
	PrevalencePer1000       *float64 `json:"prevalence_per_1000"`        // Full-list prevalence, nil when unreported
	PrevalenceOver50Per1000 *float64 `json:"prevalence_over50_per_1000"` // Over-50 prevalence, nil when unreported
}

// ConditionTotals represents the national figures for one condition
type ConditionTotals struct {
	TotalPatients           int      `json:"total_patients"`
	PrevalencePer1000       *float64 `json:"prevalence_per_1000"`        // Population-weighted, nil when the denominator is unknown
	PrevalenceOver50Per1000 *float64 `json:"prevalence_over50_per_1000"` // nil when the source carries no over-50 population
}

// Dataset is the interchange document produced by the offline pipeline.
// It is immutable once loaded by the dashboard.
type Dataset struct {
	PracticeInfo    map[string]PracticeInfo               `json:"practice_info"`    // practice id -> directory entry
	ConditionTotals map[string]ConditionTotals            `json:"condition_totals"` // condition name -> national totals
	ConditionData   map[string]map[string]ConditionMetric `json:"condition_data"`   // condition name -> practice id -> metric
}
