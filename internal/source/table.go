package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadSheet reads a CSV sheet into a raw cell grid.
// Records may have varying lengths; short rows are kept as-is.
func LoadSheet(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	grid, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", path, err)
	}

	return grid, nil
}

// ParseNumber coerces a source cell to a number.
// Returns nil on empty or unparseable input, never an error: missing
// numerics degrade to absent metrics downstream.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// Tolerate thousands separators and percent signs
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}

	return &v
}

// Row represents one cleaned practice row keyed by canonical column
type Row struct {
	PracticeID string
	Values     map[string]*float64 // canonical key -> parsed value (nil on failed coercion)
	Text       map[string]string   // canonical key -> raw trimmed cell
}

// Table represents the normalized extract
type Table struct {
	Columns []string // Ordered canonical keys, first physical occurrence only
	Rows    []*Row   // Filtered practice rows in sheet order
}

// HasColumn reports whether a canonical key survived normalization
func (t *Table) HasColumn(key string) bool {
	for _, c := range t.Columns {
		if c == key {
			return true
		}
	}
	return false
}
