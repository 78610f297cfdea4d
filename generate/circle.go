// Package generate builds deterministic random and structured fixtures —
// uniform and clustered site clouds, regular boundary polygons — used by the
// delaunay and voronoi test suites. None of it is part of the mesh
// contract itself.
package generate

import (
	"math"

	"github.com/go-geom/planarmesh/geom"
)

// RegularPolygon returns the vertices of a regular polygon circumscribed by
// a circle with the given center and radius, ordered counter-clockwise
// starting at the top. Sides must be at least 3 or it panics.
func RegularPolygon(center geom.XY, radius float64, sides int) []geom.XY {
	if sides <= 2 {
		panic(sides)
	}
	out := make([]geom.XY, sides)
	for i := 0; i < sides; i++ {
		angle := math.Pi/2 + float64(i)/float64(sides)*2*math.Pi
		out[i] = geom.XY{
			X: center.X + math.Cos(angle)*radius,
			Y: center.Y + math.Sin(angle)*radius,
		}
	}
	return out
}
