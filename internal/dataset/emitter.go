package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jengzang/prevalence-backend-go/internal/models"
)

// Build assembles the interchange document and checks its
// key-consistency invariant: every practice id appearing in condition
// data must exist in the practice directory. The converse is allowed.
func Build(practices map[string]models.PracticeInfo, totals map[string]models.ConditionTotals, data map[string]map[string]models.ConditionMetric) (*models.Dataset, error) {
	for condition, metrics := range data {
		for practiceID := range metrics {
			if _, ok := practices[practiceID]; !ok {
				return nil, fmt.Errorf("condition %q references unknown practice %q", condition, practiceID)
			}
		}
	}

	return &models.Dataset{
		PracticeInfo:    practices,
		ConditionTotals: totals,
		ConditionData:   data,
	}, nil
}

// Write serializes the document to disk. Key order in the output is
// not semantically significant.
func Write(path string, ds *models.Dataset) error {
	payload, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	return nil
}

// Load reads the document back for the dashboard. A missing or
// malformed document is a surfaced error, not a silent empty state.
func Load(path string) (*models.Dataset, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var ds models.Dataset
	if err := json.Unmarshal(payload, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	if len(ds.ConditionTotals) == 0 {
		return nil, fmt.Errorf("dataset %s contains no conditions", path)
	}

	return &ds, nil
}
