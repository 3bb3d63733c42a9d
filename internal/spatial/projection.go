package spatial

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Projection is a spherical Mercator (conformal) projection with a
// fixed center, scale and translation. Fit once over the full practice
// set, it is re-applied identically whatever subset of points is
// visible, so the frame of reference does not jitter between
// conditions.
type Projection struct {
	centerLng s1.Angle
	scale     float64
	tx, ty    float64
}

// NewProjection creates a projection centered on the given longitude
func NewProjection(centerLng float64) *Projection {
	return &Projection{
		centerLng: s1.Angle(centerLng) * s1.Degree,
		scale:     1,
	}
}

// raw projects without scale or translation, y growing downward
func (p *Projection) raw(ll s2.LatLng) r2.Point {
	x := (ll.Lng - p.centerLng).Radians()
	y := -math.Log(math.Tan(math.Pi/4 + ll.Lat.Radians()/2))
	return r2.Point{X: x, Y: y}
}

// Project maps a geographic coordinate onto the drawing surface
func (p *Projection) Project(lat, lng float64) r2.Point {
	pt := p.raw(s2.LatLngFromDegrees(lat, lng))
	return r2.Point{
		X: pt.X*p.scale + p.tx,
		Y: pt.Y*p.scale + p.ty,
	}
}

// Fit chooses scale and translation so the projected extent of the
// given points is centered on a width x height surface with the given
// padding. Call once with every geocoded practice before rendering.
func (p *Projection) Fit(coords []s2.LatLng, width, height, padding float64) {
	if len(coords) == 0 {
		return
	}

	first := p.raw(coords[0])
	minX, maxX := first.X, first.X
	minY, maxY := first.Y, first.Y
	for _, ll := range coords[1:] {
		pt := p.raw(ll)
		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}

	spanX := maxX - minX
	spanY := maxY - minY

	p.scale = 1
	if spanX > 0 || spanY > 0 {
		sx := math.Inf(1)
		sy := math.Inf(1)
		if spanX > 0 {
			sx = (width - 2*padding) / spanX
		}
		if spanY > 0 {
			sy = (height - 2*padding) / spanY
		}
		p.scale = math.Min(sx, sy)
	}

	// Center the extent midpoint on the surface midpoint
	p.tx = width/2 - (minX+maxX)/2*p.scale
	p.ty = height/2 - (minY+maxY)/2*p.scale
}
