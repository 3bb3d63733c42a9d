package render

import (
	"fmt"

	"github.com/jengzang/prevalence-backend-go/internal/models"
	"github.com/jengzang/prevalence-backend-go/internal/stats"
)

// Palette is the 7-step ordered sequential palette, light to dark
var Palette = []string{
	"#eff3ff",
	"#c6dbef",
	"#9ecae1",
	"#6baed6",
	"#4292c6",
	"#2171b5",
	"#084594",
}

// NeutralFill colors cells whose point carries no prevalence value
const NeutralFill = "#cccccc"

type bin struct {
	lower float64
	upper float64
	color string
}

// ColorScale partitions the visible prevalence domain into
// equal-frequency bins mapped onto the palette. Rebuilt in full
// whenever the visible point set changes; no cross-condition
// normalization.
type ColorScale struct {
	bins []bin
}

// NewColorScale builds the scale from the visible domain. Returns nil
// for an empty domain. With fewer values than palette steps, bins may
// collapse but still partition the observed min and max without gaps.
func NewColorScale(values []float64) *ColorScale {
	if len(values) == 0 {
		return nil
	}

	steps := len(Palette)
	bounds := make([]float64, steps+1)
	bounds[0] = stats.Min(values)
	bounds[steps] = stats.Max(values)
	for i := 1; i < steps; i++ {
		bounds[i] = stats.Quantile(values, float64(i)/float64(steps))
	}

	scale := &ColorScale{}
	if bounds[0] == bounds[steps] {
		scale.bins = []bin{{lower: bounds[0], upper: bounds[steps], color: Palette[0]}}
		return scale
	}

	// With at least one value per palette step the bin count always
	// equals the palette size, ties producing zero-width bins. Below
	// that, zero-width bins are dropped; the survivors stay contiguous
	// because consecutive bounds share their edges.
	keepTies := len(values) >= steps
	for i := 0; i < steps; i++ {
		if !keepTies && bounds[i+1] <= bounds[i] {
			continue
		}
		scale.bins = append(scale.bins, bin{lower: bounds[i], upper: bounds[i+1], color: Palette[i]})
	}

	return scale
}

// Color assigns a domain value to its bin's palette color
func (s *ColorScale) Color(v float64) string {
	for _, b := range s.bins {
		if v <= b.upper {
			return b.color
		}
	}
	return s.bins[len(s.bins)-1].color
}

// Legend builds one row per bin, lower bound of the first row at the
// domain minimum and upper bound of the last at the maximum
func (s *ColorScale) Legend() models.Legend {
	legend := models.Legend{}
	for _, b := range s.bins {
		legend.Rows = append(legend.Rows, models.LegendRow{
			Color: b.color,
			Lower: b.lower,
			Upper: b.upper,
			Label: fmt.Sprintf("%s – %s", Rate(&b.lower), Rate(&b.upper)),
		})
	}
	return legend
}
