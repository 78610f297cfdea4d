package delaunay_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-geom/planarmesh/delaunay"
	"github.com/go-geom/planarmesh/generate"
	"github.com/go-geom/planarmesh/geom"
)

func TestTriangulateUnitSquareYieldsTwoTriangles(t *testing.T) {
	points := []geom.XY{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	result, err := delaunay.Triangulate(points, delaunay.WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)
	require.Len(t, result.Triangles, 2)
	assert.Zero(t, result.Skipped)

	for _, tri := range result.Triangles {
		used := map[int]bool{}
		for _, idx := range tri {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, len(points))
			used[idx] = true
		}
		assert.Len(t, used, 3)
	}

	assert.NoError(t, result.Mesh.Validate())

	// Each triangle is empty of the fourth point: for every output
	// triangle, no other input point lies strictly inside its
	// circumcircle.
	for _, tri := range result.Triangles {
		a, b, c := points[tri[0]], points[tri[1]], points[tri[2]]
		circ, err := geom.CircumCircle(a, b, c)
		require.NoError(t, err)
		for i, p := range points {
			if i == tri[0] || i == tri[1] || i == tri[2] {
				continue
			}
			assert.Falsef(t, geom.PointInCircle(p, circ), "point %d lies inside circumcircle of triangle %v", i, tri)
		}
	}
}

func TestTriangulateEmptyCircumcircleProperty(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	points := generate.RandomSites(rnd, 30, geom.Box{Min: geom.XY{X: 0, Y: 0}, Max: geom.XY{X: 50, Y: 50}})

	result, err := delaunay.Triangulate(points, delaunay.WithRand(rand.New(rand.NewSource(7))))
	require.NoError(t, err)
	require.NotEmpty(t, result.Triangles)

	for _, tri := range result.Triangles {
		a, b, c := points[tri[0]], points[tri[1]], points[tri[2]]
		circ, err := geom.CircumCircle(a, b, c)
		if err != nil {
			continue
		}
		for i, p := range points {
			if i == tri[0] || i == tri[1] || i == tri[2] {
				continue
			}
			d := geom.Distance(p, circ.Center)
			assert.GreaterOrEqualf(t, d, circ.Radius-1e-9, "point %d strictly inside circumcircle of triangle %v", i, tri)
		}
	}
}

func TestTriangulateEmptyCircumcirclePropertyClusteredInput(t *testing.T) {
	rnd := rand.New(rand.NewSource(13))
	box := geom.Box{Min: geom.XY{X: 0, Y: 0}, Max: geom.XY{X: 50, Y: 50}}
	points := generate.ClusteredSites(rnd, 30, box, 0.2)

	result, err := delaunay.Triangulate(points, delaunay.WithRand(rand.New(rand.NewSource(13))))
	require.NoError(t, err)
	require.NotEmpty(t, result.Triangles)

	for _, tri := range result.Triangles {
		a, b, c := points[tri[0]], points[tri[1]], points[tri[2]]
		circ, err := geom.CircumCircle(a, b, c)
		if err != nil {
			continue
		}
		for i, p := range points {
			if i == tri[0] || i == tri[1] || i == tri[2] {
				continue
			}
			d := geom.Distance(p, circ.Center)
			assert.GreaterOrEqualf(t, d, circ.Radius-1e-9, "point %d strictly inside circumcircle of triangle %v", i, tri)
		}
	}
}

func TestTriangulateWithBoundaryClip(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	box := geom.Box{Min: geom.XY{X: 0, Y: 0}, Max: geom.XY{X: 50, Y: 50}}
	points := generate.RandomSites(rnd, 20, box)
	boundary := generate.RegularPolygon(geom.XY{X: 25, Y: 25}, 20, 64)

	result, err := delaunay.Triangulate(points,
		delaunay.WithRand(rand.New(rand.NewSource(11))),
		delaunay.WithBoundary(boundary),
	)
	require.NoError(t, err)

	for _, f := range result.Mesh.Faces() {
		c, err := result.Mesh.FaceCentroid(f)
		require.NoError(t, err)
		assert.True(t, geom.PointInPolygon(c, boundary) || math.Hypot(c.X-25, c.Y-25) <= 20+1e-6)
	}
}

func TestTriangulateWithRTreeAccelerationMatchesLinearScan(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	box := geom.Box{Min: geom.XY{X: 0, Y: 0}, Max: geom.XY{X: 20, Y: 20}}
	points := generate.RandomSites(rnd, 25, box)

	linear, err := delaunay.Triangulate(points, delaunay.WithRand(rand.New(rand.NewSource(99))))
	require.NoError(t, err)
	accelerated, err := delaunay.Triangulate(points,
		delaunay.WithRand(rand.New(rand.NewSource(99))),
		delaunay.WithRTreeAcceleration(),
	)
	require.NoError(t, err)

	assert.ElementsMatch(t, normalizeTriangles(linear.Triangles), normalizeTriangles(accelerated.Triangles))
}

// normalizeTriangles rotates each triangle's indices to start at its
// smallest index, so set comparison ignores which vertex happened to be
// listed first.
func normalizeTriangles(tris [][3]int) [][3]int {
	out := make([][3]int, len(tris))
	for i, tri := range tris {
		min := 0
		for j := 1; j < 3; j++ {
			if tri[j] < tri[min] {
				min = j
			}
		}
		out[i] = [3]int{tri[min], tri[(min+1)%3], tri[(min+2)%3]}
	}
	return out
}

func TestTriangulateDeterministicWithFixedSeed(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	points := generate.RandomSites(rnd, 15, geom.Box{Min: geom.XY{X: 0, Y: 0}, Max: geom.XY{X: 10, Y: 10}})

	r1, err := delaunay.Triangulate(points, delaunay.WithRand(rand.New(rand.NewSource(123))))
	require.NoError(t, err)
	r2, err := delaunay.Triangulate(points, delaunay.WithRand(rand.New(rand.NewSource(123))))
	require.NoError(t, err)

	assert.Equal(t, r1.Triangles, r2.Triangles)
}
