package source

import (
	"fmt"
	"strings"
)

// Options controls how a raw grid is normalized
type Options struct {
	HeaderOffset      int    // Row index of the first header row
	PracticeIDKey     string // Canonical key of the practice identifier column
	SummarySentinel   string // Practice id marking the whole-region aggregate row
	PlaceholderPrefix string // First-row cells with this prefix count as blank
}

// DefaultOptions matches the published register extract layout
func DefaultOptions() Options {
	return Options{
		HeaderOffset:      1,
		PracticeIDKey:     "Practice Code",
		SummarySentinel:   "ALL",
		PlaceholderPrefix: "Unnamed",
	}
}

// CollapseHeader builds the canonical key for one column from its
// two header cells. Blank or placeholder cells count as empty; both
// empty yields "" and the column is dropped by Normalize.
func CollapseHeader(first, second string, placeholderPrefix string) string {
	a := cleanHeaderCell(first, placeholderPrefix)
	b := cleanHeaderCell(second, placeholderPrefix)

	switch {
	case a != "" && b != "":
		return a + "|" + b
	case a != "":
		return a
	default:
		return b
	}
}

func cleanHeaderCell(s, placeholderPrefix string) string {
	s = strings.TrimSpace(s)
	if placeholderPrefix != "" && strings.HasPrefix(s, placeholderPrefix) {
		return ""
	}
	return s
}

// Normalize collapses the two-row header, de-duplicates canonical
// columns keeping the first physical occurrence, drops rows without a
// practice id and the whole-region summary row, and coerces every cell
// through ParseNumber.
//
// A grid too short to hold both header rows, or one whose headers
// collapse to zero canonical columns, is a header-shape mismatch and
// returns an error rather than mis-parsing silently.
func Normalize(grid [][]string, opts Options) (*Table, error) {
	if len(grid) < opts.HeaderOffset+2 {
		return nil, fmt.Errorf("header shape mismatch: grid has %d rows, need headers at rows %d and %d",
			len(grid), opts.HeaderOffset, opts.HeaderOffset+1)
	}

	headerA := grid[opts.HeaderOffset]
	headerB := grid[opts.HeaderOffset+1]

	width := len(headerA)
	if len(headerB) > width {
		width = len(headerB)
	}

	// Collapse headers and keep the first column per canonical key
	type column struct {
		key   string
		index int
	}
	var columns []column
	seen := make(map[string]bool)
	for i := 0; i < width; i++ {
		key := CollapseHeader(cellAt(headerA, i), cellAt(headerB, i), opts.PlaceholderPrefix)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		columns = append(columns, column{key: key, index: i})
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("header shape mismatch: no canonical columns at offset %d", opts.HeaderOffset)
	}
	if !seen[opts.PracticeIDKey] {
		return nil, fmt.Errorf("header shape mismatch: practice id column %q not found", opts.PracticeIDKey)
	}

	table := &Table{}
	for _, c := range columns {
		table.Columns = append(table.Columns, c.key)
	}

	for _, raw := range grid[opts.HeaderOffset+2:] {
		row := &Row{
			Values: make(map[string]*float64, len(columns)),
			Text:   make(map[string]string, len(columns)),
		}
		for _, c := range columns {
			cell := strings.TrimSpace(cellAt(raw, c.index))
			row.Text[c.key] = cell
			row.Values[c.key] = ParseNumber(cell)
		}

		row.PracticeID = row.Text[opts.PracticeIDKey]
		if row.PracticeID == "" || row.PracticeID == opts.SummarySentinel {
			continue
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
