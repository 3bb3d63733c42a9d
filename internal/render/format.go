package render

import (
	"github.com/dustin/go-humanize"
)

// Placeholder marks an unreported value, distinguishable from a real
// zero and from an omitted cell
const Placeholder = "–"

// Count formats a patient count with thousands separators
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Rate formats a prevalence rate to 2 decimals with thousands
// separators, or the placeholder glyph when the value is unreported
func Rate(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return humanize.FormatFloat("#,###.##", *v)
}
