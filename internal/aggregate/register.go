package aggregate

import (
	"fmt"

	"github.com/jengzang/prevalence-backend-go/internal/models"
	"github.com/jengzang/prevalence-backend-go/internal/source"
	"github.com/jengzang/prevalence-backend-go/internal/stats"
)

// rateDigits normalizes floating noise while keeping near-exact fidelity
const rateDigits = 10

// Input describes the normalized extract to aggregate
type Input struct {
	Table         *source.Table
	ListSizeKey   string // Canonical key of the practice list-size column
	SubsetSizeKey string // Canonical key of the subset population column, "" when the source has none
}

// Result holds the derived per-practice metrics and national totals
type Result struct {
	ConditionData   map[string]map[string]models.ConditionMetric
	ConditionTotals map[string]models.ConditionTotals
}

// conditionColumns groups the canonical keys mapped to one base condition
type conditionColumns struct {
	counts []string
	prev   []string
	sub    []string
}

// Aggregate merges duplicated register columns per base condition and
// computes per-practice metrics plus population-weighted national rates.
func Aggregate(in Input) (*Result, error) {
	if in.Table == nil || len(in.Table.Rows) == 0 {
		return nil, fmt.Errorf("no practice rows to aggregate")
	}

	// Group columns by base condition, preserving encounter order
	groups := make(map[string]*conditionColumns)
	var order []string
	for _, key := range in.Table.Columns {
		role, condition := ClassifyColumn(key)
		if role == RoleNone {
			continue
		}
		g, ok := groups[condition]
		if !ok {
			g = &conditionColumns{}
			groups[condition] = g
			order = append(order, condition)
		}
		switch role {
		case RolePatients:
			g.counts = append(g.counts, key)
		case RolePrevalence:
			g.prev = append(g.prev, key)
		case RoleSubPrevalence:
			g.sub = append(g.sub, key)
		}
	}

	if len(order) == 0 {
		return nil, fmt.Errorf("no register columns matched any role")
	}

	result := &Result{
		ConditionData:   make(map[string]map[string]models.ConditionMetric, len(order)),
		ConditionTotals: make(map[string]models.ConditionTotals, len(order)),
	}

	// Denominators are summed over the whole practice set, not just
	// practices reporting a given condition
	listTotal := columnTotal(in.Table, in.ListSizeKey)
	var subsetTotal *float64
	if in.SubsetSizeKey != "" && in.Table.HasColumn(in.SubsetSizeKey) {
		subsetTotal = columnTotal(in.Table, in.SubsetSizeKey)
	}

	for _, condition := range order {
		g := groups[condition]
		metrics := make(map[string]models.ConditionMetric)
		totalPatients := 0

		for _, row := range in.Table.Rows {
			patients, reported := sumCounts(row, g.counts)
			if !reported || patients <= 0 {
				// Zero or unknown patients: absent, never stored as zero
				continue
			}

			metric := models.ConditionMetric{
				Patients:          patients,
				PrevalencePer1000: meanRate(row, g.prev),
			}
			if len(g.sub) > 0 {
				metric.PrevalenceOver50Per1000 = meanRate(row, g.sub)
			}

			metrics[row.PracticeID] = metric
			totalPatients += patients
		}

		totals := models.ConditionTotals{
			TotalPatients:           totalPatients,
			PrevalencePer1000:       nationalRate(totalPatients, listTotal),
			PrevalenceOver50Per1000: nationalRate(totalPatients, subsetTotal),
		}

		result.ConditionData[condition] = metrics
		result.ConditionTotals[condition] = totals
	}

	return result, nil
}

// sumCounts sums the mapped patient-count columns treating missing as
// zero; reported is false when every input was missing.
func sumCounts(row *source.Row, keys []string) (int, bool) {
	total := 0.0
	reported := false
	for _, key := range keys {
		if v := row.Values[key]; v != nil {
			total += *v
			reported = true
		}
	}
	return int(total), reported
}

// meanRate averages the non-missing values among mapped rate columns.
// Source values are already rates and are never re-derived from counts.
func meanRate(row *source.Row, keys []string) *float64 {
	var values []float64
	for _, key := range keys {
		if v := row.Values[key]; v != nil {
			values = append(values, *v)
		}
	}
	if len(values) == 0 {
		return nil
	}
	rate := stats.RoundTo(stats.Mean(values), rateDigits)
	return &rate
}

// nationalRate computes patients/denominator x 1000, nil when the
// denominator is zero or unknown
func nationalRate(patients int, denominator *float64) *float64 {
	if denominator == nil || *denominator <= 0 {
		return nil
	}
	rate := stats.RoundTo(float64(patients)/(*denominator)*1000, rateDigits)
	return &rate
}

// columnTotal sums a column across every practice row, missing cells
// contributing zero. Returns nil when the column is absent entirely.
func columnTotal(table *source.Table, key string) *float64 {
	if key == "" || !table.HasColumn(key) {
		return nil
	}

	var values []float64
	for _, row := range table.Rows {
		if v := row.Values[key]; v != nil {
			values = append(values, *v)
		}
	}
	total := stats.Sum(values)
	return &total
}
