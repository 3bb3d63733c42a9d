package spatial

import (
	"sort"

	"github.com/golang/geo/r2"
)

// ConvexHull computes the convex hull of a point set using the
// monotone chain algorithm. Returns the hull counter-clockwise, or nil
// when fewer than 3 points yield a non-degenerate (non-collinear) hull.
func ConvexHull(points []r2.Point) []r2.Point {
	if len(points) < 3 {
		return nil
	}

	sorted := make([]r2.Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	var lower []r2.Point
	for _, p := range sorted {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []r2.Point
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Endpoints are shared between the two chains
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		return nil
	}

	return hull
}

// cross returns the z-component of (b-a) x (c-a); positive for a left
// turn
func cross(a, b, c r2.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
