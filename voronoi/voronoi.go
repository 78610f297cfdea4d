// Package voronoi builds the Voronoi diagram that is dual to a Delaunay
// triangulation, by delegating to mesh.DualWithCoords and replacing each
// dual vertex's coordinates with the circumcenter of the Delaunay face it
// corresponds to.
package voronoi

import (
	"github.com/go-geom/planarmesh/geom"
	"github.com/go-geom/planarmesh/mesh"
)

// FromDelaunay builds the Voronoi diagram dual to the Delaunay mesh m. Its
// vertices correspond to m's triangular faces, placed at each triangle's
// circumcenter rather than its centroid; its faces correspond to m's
// interior vertices, each one the cyclic fan of incident triangles'
// circumcenters. Boundary vertices of m yield no Voronoi cell — a
// documented limitation of the unbounded diagram — and if every vertex of
// m lies on the boundary, the result has no faces at all.
func FromDelaunay(m *mesh.Mesh) *mesh.Mesh {
	return mesh.DualWithCoords(m, func(fkey mesh.FaceKey) (float64, float64) {
		coords, err := m.FaceCoordinates(fkey)
		if err != nil || len(coords) != 3 {
			c, _ := m.FaceCentroid(fkey)
			return c.X, c.Y
		}
		circ, err := geom.CircumCircle(coords[0].XY(), coords[1].XY(), coords[2].XY())
		if err != nil {
			c, _ := m.FaceCentroid(fkey)
			return c.X, c.Y
		}
		return circ.Center.X, circ.Center.Y
	})
}
