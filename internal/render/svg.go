package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/jengzang/prevalence-backend-go/internal/models"
	"github.com/jengzang/prevalence-backend-go/internal/spatial"
)

// CellView is one colored tessellation cell with its tooltip text
type CellView struct {
	Site    r2.Point
	Polygon []r2.Point
	Fill    string
	Title   string
}

// MapView is the immutable spatial view model: a pure function of the
// feature list, rendered without any drawing surface
type MapView struct {
	Width  float64
	Height float64
	Cells  []CellView
	Hull   []r2.Point // nil when fewer than 3 points yield a real hull
	Legend models.Legend
}

// BuildMapView projects the visible features, tessellates the surface,
// classifies prevalence into quantile bins and prepares the legend.
// Zero features produce an empty view; that is expected, not an error.
func BuildMapView(features []models.Feature, proj *spatial.Projection, width, height float64) MapView {
	view := MapView{Width: width, Height: height}
	if len(features) == 0 {
		return view
	}

	sites := make([]r2.Point, len(features))
	var domain []float64
	for i, f := range features {
		sites[i] = proj.Project(f.Latitude, f.Longitude)
		if f.PrevalencePer1000 != nil {
			domain = append(domain, *f.PrevalencePer1000)
		}
	}

	scale := NewColorScale(domain)
	cells := spatial.Voronoi(sites, width, height)

	for i, f := range features {
		if len(cells[i].Polygon) == 0 {
			continue
		}
		fill := NeutralFill
		if scale != nil && f.PrevalencePer1000 != nil {
			fill = scale.Color(*f.PrevalencePer1000)
		}
		view.Cells = append(view.Cells, CellView{
			Site:    sites[i],
			Polygon: cells[i].Polygon,
			Fill:    fill,
			Title:   cellTitle(f),
		})
	}

	view.Hull = spatial.ConvexHull(sites)
	if scale != nil {
		view.Legend = scale.Legend()
	}

	return view
}

// cellTitle builds the floating annotation shown on pointer motion
func cellTitle(f models.Feature) string {
	return fmt.Sprintf("%s\nPatients: %s\nPrevalence per 1,000: %s\nPrevalence per 1,000 (50+): %s",
		f.Name,
		Count(f.Patients),
		Rate(f.PrevalencePer1000),
		Rate(f.PrevalenceOver50Per1000),
	)
}

// RenderSVG turns a map view into SVG markup. Tooltips ride along as
// <title> children so the annotation follows pointer hover and hides
// when the pointer leaves the surface.
func RenderSVG(view MapView) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`,
		view.Width, view.Height, view.Width, view.Height)
	b.WriteString("\n")

	b.WriteString(`<g class="cells">` + "\n")
	for _, cell := range view.Cells {
		fmt.Fprintf(&b, `<polygon points="%s" fill="%s" stroke="#ffffff" stroke-width="0.5"><title>%s</title></polygon>`,
			pointList(cell.Polygon), cell.Fill, html.EscapeString(cell.Title))
		b.WriteString("\n")
		fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="1.5" fill="#333333"/>`, cell.Site.X, cell.Site.Y)
		b.WriteString("\n")
	}
	b.WriteString("</g>\n")

	if len(view.Hull) >= 3 {
		fmt.Fprintf(&b, `<polygon class="outline" points="%s" fill="none" stroke="#555555" stroke-width="1"/>`,
			pointList(view.Hull))
		b.WriteString("\n")
	}

	if len(view.Legend.Rows) > 0 {
		b.WriteString(`<g class="legend">` + "\n")
		for i, row := range view.Legend.Rows {
			y := 10 + i*18
			fmt.Fprintf(&b, `<rect x="10" y="%d" width="14" height="14" fill="%s"/>`, y, row.Color)
			fmt.Fprintf(&b, `<text x="30" y="%d" font-size="11">%s</text>`, y+11, html.EscapeString(row.Label))
			b.WriteString("\n")
		}
		b.WriteString("</g>\n")
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func pointList(points []r2.Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
