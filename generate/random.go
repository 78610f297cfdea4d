package generate

import (
	"math/rand"

	"github.com/go-geom/planarmesh/geom"
)

// RandomSites returns n points drawn uniformly from box, suitable as a
// Delaunay input site cloud.
func RandomSites(rnd *rand.Rand, n int, box geom.Box) []geom.XY {
	out := make([]geom.XY, n)
	w := box.Max.X - box.Min.X
	h := box.Max.Y - box.Min.Y
	for i := range out {
		out[i] = geom.XY{
			X: box.Min.X + rnd.Float64()*w,
			Y: box.Min.Y + rnd.Float64()*h,
		}
	}
	return out
}
