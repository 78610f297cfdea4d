package mesh_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-geom/planarmesh/mesh"
)

// unitSquareQuad builds the single-quad-face fixture used by several of the
// spec's concrete scenarios: a quad (0,1,2,3) at the unit square's corners.
func unitSquareQuad(t *testing.T) (*mesh.Mesh, mesh.FaceKey) {
	t.Helper()
	m := mesh.New()
	v0 := m.AddVertex(0, 0, 0)
	v1 := m.AddVertex(1, 0, 0)
	v2 := m.AddVertex(1, 1, 0)
	v3 := m.AddVertex(0, 1, 0)
	require.Equal(t, mesh.VertexKey(0), v0)
	fkey, err := m.AddFace([]mesh.VertexKey{v0, v1, v2, v3})
	require.NoError(t, err)
	return m, fkey
}

func TestSplitEdgeInteriorOfQuad(t *testing.T) {
	m, fkey := unitSquareQuad(t)

	w, ok, err := m.SplitEdge(0, 1, 0.5, true)
	require.NoError(t, err)
	require.True(t, ok)

	coords, err := m.VertexCoordinates(w)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, coords.X, 1e-12)
	assert.InDelta(t, 0, coords.Y, 1e-12)

	cycle, err := m.FaceVertices(fkey)
	require.NoError(t, err)
	want := []mesh.VertexKey{0, w, 1, 2, 3}
	if diff := cmp.Diff(want, cycle); diff != "" {
		t.Errorf("unexpected face cycle (-want +got):\n%s", diff)
	}

	assert.NoError(t, m.Validate())
}

func TestSplitEdgeBoundaryDeniedByDefault(t *testing.T) {
	m, _ := unitSquareQuad(t)
	w, ok, err := m.SplitEdge(0, 1, 0.5, false)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, w)
}

func TestSplitEdgeInvalidParameter(t *testing.T) {
	m, _ := unitSquareQuad(t)
	for _, badT := range []float64{0, 1, -0.1, 1.1} {
		_, _, err := m.SplitEdge(0, 1, badT, true)
		assert.ErrorIs(t, err, mesh.ErrInvalidParameter)
	}
}

func TestSplitFaceByChord(t *testing.T) {
	m, fkey := unitSquareQuad(t)

	f1, f2, err := m.SplitFace(fkey, 1, 3)
	require.NoError(t, err)

	c1, err := m.FaceVertices(f1)
	require.NoError(t, err)
	c2, err := m.FaceVertices(f2)
	require.NoError(t, err)

	assert.Equal(t, []mesh.VertexKey{1, 2, 3}, c1)
	assert.Equal(t, []mesh.VertexKey{3, 0, 1}, c2)

	_, err = m.FaceVertices(fkey)
	assert.ErrorIs(t, err, mesh.ErrUnknownKey)

	assert.NoError(t, m.Validate())
}

func TestSplitFaceAdjacentVerticesRejected(t *testing.T) {
	m, fkey := unitSquareQuad(t)
	_, _, err := m.SplitFace(fkey, 0, 1)
	assert.ErrorIs(t, err, mesh.ErrAdjacent)
}

func TestSplitFaceVertexNotOnFace(t *testing.T) {
	m, fkey := unitSquareQuad(t)
	other := m.AddVertex(5, 5, 0)
	_, _, err := m.SplitFace(fkey, 0, other)
	assert.ErrorIs(t, err, mesh.ErrNotOnFace)
}

// twoTriangleStrip builds two triangles (0,1,2) and (0,2,3) sharing edge
// (0,2), as in the spec's flip-edge scenario.
func twoTriangleStrip(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := mesh.New()
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(1, 1, 0)
	m.AddVertex(0, 1, 0)
	_, err := m.AddFace([]mesh.VertexKey{0, 1, 2})
	require.NoError(t, err)
	_, err = m.AddFace([]mesh.VertexKey{0, 2, 3})
	require.NoError(t, err)
	return m
}

func TestFlipEdge(t *testing.T) {
	m := twoTriangleStrip(t)

	f1, f2, err := m.FlipEdge(0, 2)
	require.NoError(t, err)

	c1, err := m.FaceVertices(f1)
	require.NoError(t, err)
	c2, err := m.FaceVertices(f2)
	require.NoError(t, err)

	assert.Equal(t, []mesh.VertexKey{0, 1, 3}, c1)
	assert.Equal(t, []mesh.VertexKey{2, 3, 1}, c2)

	_, ok := m.HalfEdgeFace(0, 2)
	assert.False(t, ok)
	_, ok = m.HalfEdgeFace(1, 3)
	assert.True(t, ok)

	assert.NoError(t, m.Validate())
}

// cyclicEqual reports whether a and b are the same cyclic sequence,
// allowing for a different (but same-direction) starting point.
func cyclicEqual(a, b []mesh.VertexKey) bool {
	if len(a) != len(b) {
		return false
	}
	n := len(a)
	for shift := 0; shift < n; shift++ {
		match := true
		for i := 0; i < n; i++ {
			if a[i] != b[(i+shift)%n] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func TestFlipEdgeIsInvolution(t *testing.T) {
	m := twoTriangleStrip(t)
	_, _, err := m.FlipEdge(0, 2)
	require.NoError(t, err)

	// The new shared edge is (1, 3); flipping it again should restore
	// the original pair of triangles (up to a cyclic rotation of each
	// face's starting vertex).
	nf1, nf2, err := m.FlipEdge(1, 3)
	require.NoError(t, err)

	c1, err := m.FaceVertices(nf1)
	require.NoError(t, err)
	c2, err := m.FaceVertices(nf2)
	require.NoError(t, err)

	assert.True(t, cyclicEqual(c1, []mesh.VertexKey{0, 1, 2}) || cyclicEqual(c2, []mesh.VertexKey{0, 1, 2}))
	assert.True(t, cyclicEqual(c1, []mesh.VertexKey{0, 2, 3}) || cyclicEqual(c2, []mesh.VertexKey{0, 2, 3}))

	assert.NoError(t, m.Validate())
	_, ok := m.HalfEdgeFace(0, 2)
	assert.True(t, ok)
}

func TestFlipEdgeBoundaryRejected(t *testing.T) {
	m := twoTriangleStrip(t)
	_, _, err := m.FlipEdge(0, 1)
	assert.ErrorIs(t, err, mesh.ErrBoundaryFlip)
}

func TestInsertVertexIntoFace(t *testing.T) {
	m, fkey := unitSquareQuad(t)
	w, faces, err := m.InsertVertexIntoFace(fkey, 0.5, 0.5, 0)
	require.NoError(t, err)
	require.Len(t, faces, 4)

	_, err = m.FaceVertices(fkey)
	assert.ErrorIs(t, err, mesh.ErrUnknownKey)

	for _, f := range faces {
		cyc, err := m.FaceVertices(f)
		require.NoError(t, err)
		assert.Len(t, cyc, 3)
		assert.Contains(t, cyc, w)
	}
	assert.NoError(t, m.Validate())
}

func TestSplitEdgeTriangleBisectsBothSides(t *testing.T) {
	m := twoTriangleStrip(t)
	w, ok, err := m.SplitEdgeTriangle(0, 2, 0.5, true)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Len(t, m.Faces(), 4)
	for _, f := range m.Faces() {
		cyc, err := m.FaceVertices(f)
		require.NoError(t, err)
		assert.Len(t, cyc, 3)
	}
	coords, err := m.VertexCoordinates(w)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, coords.X, 1e-12)
	assert.InDelta(t, 0.5, coords.Y, 1e-12)

	assert.NoError(t, m.Validate())
}

func TestDeleteVertexRemovesIncidentFaces(t *testing.T) {
	m := twoTriangleStrip(t)
	err := m.DeleteVertex(0)
	require.NoError(t, err)

	assert.Len(t, m.Faces(), 0)
	assert.NoError(t, m.Validate())
}

func TestVertexFacesOrderedOnBoundaryVertex(t *testing.T) {
	m, fkey := unitSquareQuad(t)
	faces, ok := m.VertexFaces(0, true)
	require.True(t, ok)
	assert.Equal(t, []mesh.FaceKey{fkey}, faces)
}

func TestVertexFacesOrderedOnInteriorVertex(t *testing.T) {
	m, fkey := unitSquareQuad(t)
	_, newFaces, err := m.InsertVertexIntoFace(fkey, 0.5, 0.5, 0)
	require.NoError(t, err)

	faces, ok := m.VertexFaces(4, true)
	require.True(t, ok)
	assert.ElementsMatch(t, newFaces, faces)
	assert.Len(t, faces, 4)
}

func TestDualOfSingleQuadIsEmpty(t *testing.T) {
	m, _ := unitSquareQuad(t)
	dual := mesh.Dual(m)
	// All four vertices of a lone quad are on its boundary, so the dual
	// has no faces.
	assert.Len(t, dual.Faces(), 0)
}
