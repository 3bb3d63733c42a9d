package spatial

import (
	"github.com/golang/geo/r2"
)

// Cell is one region of the point-based planar subdivision: the part
// of the drawing rectangle closer to its site than to any other site.
type Cell struct {
	Site    r2.Point
	Polygon []r2.Point // Convex, counter-clockwise, clipped to the rectangle; nil for duplicate sites
}

const coincidentEps = 1e-9

// Voronoi builds one cell per site by clipping the drawing rectangle
// against the perpendicular-bisector half-plane between the site and
// every other site. Cells tile the rectangle with no overlaps or gaps.
// When two sites coincide, only the first keeps a cell.
func Voronoi(sites []r2.Point, width, height float64) []Cell {
	cells := make([]Cell, len(sites))

	for i, site := range sites {
		cells[i].Site = site
		if hasEarlierTwin(sites, i) {
			continue
		}

		polygon := []r2.Point{
			{X: 0, Y: 0},
			{X: width, Y: 0},
			{X: width, Y: height},
			{X: 0, Y: height},
		}

		for j, other := range sites {
			if i == j || coincident(site, other) {
				continue
			}
			polygon = clipHalfPlane(polygon, site, other)
			if len(polygon) == 0 {
				break
			}
		}

		cells[i].Polygon = polygon
	}

	return cells
}

func coincident(a, b r2.Point) bool {
	d := a.Sub(b)
	return d.X*d.X+d.Y*d.Y < coincidentEps
}

func hasEarlierTwin(sites []r2.Point, i int) bool {
	for j := 0; j < i; j++ {
		if coincident(sites[i], sites[j]) {
			return true
		}
	}
	return false
}

// clipHalfPlane keeps the part of a convex polygon on the site's side
// of the perpendicular bisector between site and other
// (Sutherland-Hodgman against one clip line).
func clipHalfPlane(polygon []r2.Point, site, other r2.Point) []r2.Point {
	// Points p with (p - mid) . (other - site) <= 0 are closer to site
	mid := site.Add(other).Mul(0.5)
	normal := other.Sub(site)

	side := func(p r2.Point) float64 {
		return p.Sub(mid).Dot(normal)
	}

	var out []r2.Point
	n := len(polygon)
	for i := 0; i < n; i++ {
		cur := polygon[i]
		next := polygon[(i+1)%n]
		curIn := side(cur) <= 0
		nextIn := side(next) <= 0

		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			out = append(out, intersect(cur, next, side))
		}
	}

	return out
}

// intersect finds the crossing of segment ab with the clip line, where
// side changes sign between a and b
func intersect(a, b r2.Point, side func(r2.Point) float64) r2.Point {
	sa := side(a)
	sb := side(b)
	t := sa / (sa - sb)
	return r2.Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}
