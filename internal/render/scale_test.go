package render

import (
	"testing"
)

func TestColorScaleSevenBins(t *testing.T) {
	values := make([]float64, 14)
	for i := range values {
		values[i] = float64(i + 1)
	}

	scale := NewColorScale(values)
	legend := scale.Legend()

	if len(legend.Rows) != len(Palette) {
		t.Fatalf("got %d legend rows, want %d", len(legend.Rows), len(Palette))
	}
	if legend.Rows[0].Lower != 1 {
		t.Errorf("first lower bound = %v, want domain minimum 1", legend.Rows[0].Lower)
	}
	if legend.Rows[len(legend.Rows)-1].Upper != 14 {
		t.Errorf("last upper bound = %v, want domain maximum 14", legend.Rows[len(legend.Rows)-1].Upper)
	}
	for i := 1; i < len(legend.Rows); i++ {
		if legend.Rows[i].Lower != legend.Rows[i-1].Upper {
			t.Errorf("gap between rows %d and %d: %v != %v",
				i-1, i, legend.Rows[i-1].Upper, legend.Rows[i].Lower)
		}
	}

	if got := scale.Color(1); got != Palette[0] {
		t.Errorf("Color(min) = %s, want lightest step", got)
	}
	if got := scale.Color(14); got != Palette[len(Palette)-1] {
		t.Errorf("Color(max) = %s, want darkest step", got)
	}
	if got := scale.Color(100); got != Palette[len(Palette)-1] {
		t.Errorf("Color beyond domain = %s, want darkest step", got)
	}
}

func TestColorScaleCollapsedBins(t *testing.T) {
	// Heavy ties collapse quantile breakpoints; the remaining bins
	// must still partition min..max without gaps
	scale := NewColorScale([]float64{5, 5, 5, 9})
	legend := scale.Legend()

	if len(legend.Rows) == 0 || len(legend.Rows) > len(Palette) {
		t.Fatalf("unexpected row count %d", len(legend.Rows))
	}
	if legend.Rows[0].Lower != 5 {
		t.Errorf("first lower bound = %v, want 5", legend.Rows[0].Lower)
	}
	if legend.Rows[len(legend.Rows)-1].Upper != 9 {
		t.Errorf("last upper bound = %v, want 9", legend.Rows[len(legend.Rows)-1].Upper)
	}
	for i := 1; i < len(legend.Rows); i++ {
		if legend.Rows[i].Lower != legend.Rows[i-1].Upper {
			t.Errorf("gap between rows %d and %d", i-1, i)
		}
	}
}

func TestColorScaleTiesWithFullDomain(t *testing.T) {
	// At or above palette size the bin count always equals the palette
	// size, ties collapsing to zero-width bins rather than fewer rows
	scale := NewColorScale([]float64{2, 2, 2, 2, 2, 2, 2, 8})
	legend := scale.Legend()

	if len(legend.Rows) != len(Palette) {
		t.Fatalf("got %d rows, want %d", len(legend.Rows), len(Palette))
	}
	if legend.Rows[0].Lower != 2 || legend.Rows[len(legend.Rows)-1].Upper != 8 {
		t.Errorf("legend bounds %v..%v, want 2..8",
			legend.Rows[0].Lower, legend.Rows[len(legend.Rows)-1].Upper)
	}
}

func TestColorScaleSingleValue(t *testing.T) {
	scale := NewColorScale([]float64{4, 4})
	legend := scale.Legend()

	if len(legend.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(legend.Rows))
	}
	if legend.Rows[0].Lower != 4 || legend.Rows[0].Upper != 4 {
		t.Errorf("row bounds = %v..%v, want 4..4", legend.Rows[0].Lower, legend.Rows[0].Upper)
	}
	if scale.Color(4) != Palette[0] {
		t.Error("single-value domain should map to the first palette step")
	}
}

func TestColorScaleEmptyDomain(t *testing.T) {
	if scale := NewColorScale(nil); scale != nil {
		t.Error("empty domain should yield no scale")
	}
}

func TestFormatting(t *testing.T) {
	if got := Count(1234567); got != "1,234,567" {
		t.Errorf("Count = %q", got)
	}
	v := 1234.567
	if got := Rate(&v); got != "1,234.57" {
		t.Errorf("Rate = %q", got)
	}
	if got := Rate(nil); got != Placeholder {
		t.Errorf("Rate(nil) = %q, want placeholder", got)
	}
}
