package mesh

// This file implements the mesh-operation contract: the topology-changing
// mutators layered on top of the primitive vertex/face/half-edge storage in
// mesh.go. Each function checks its preconditions up front and performs no
// partial mutation on failure.

// SplitEdge inserts a new vertex w on edge u-v at parameter t (measured
// from u), growing each incident face by one vertex without creating or
// destroying any face. It fails with ErrInvalidParameter if t is not
// strictly between 0 and 1, and with ErrUnknownKey if u-v is not an edge of
// the mesh. If either side of the edge is Outside and allowBoundary is
// false, it performs no mutation and returns ok=false with a nil error —
// this is a documented no-op, not a failure.
func (m *Mesh) SplitEdge(u, v VertexKey, t float64, allowBoundary bool) (w VertexKey, ok bool, err error) {
	if t <= 0 || t >= 1 {
		return 0, false, ErrInvalidParameter
	}
	fuv, ok1 := m.HalfEdgeFace(u, v)
	fvu, ok2 := m.HalfEdgeFace(v, u)
	if !ok1 || !ok2 {
		return 0, false, ErrUnknownKey
	}
	if (fuv == Outside || fvu == Outside) && !allowBoundary {
		return 0, false, nil
	}

	mid, err := m.EdgePoint(u, v, t)
	if err != nil {
		return 0, false, err
	}
	w = m.AddVertex(mid.X, mid.Y, mid.Z)

	m.delHalf(u, v)
	m.setHalf(u, w, fuv)
	m.setHalf(w, v, fuv)
	if fuv != Outside {
		insertBefore(m.faces[fuv], v, w)
	}

	m.delHalf(v, u)
	m.setHalf(v, w, fvu)
	m.setHalf(w, u, fvu)
	if fvu != Outside {
		insertBefore(m.faces[fvu], u, w)
	}

	return w, true, nil
}

// insertBefore inserts newVertex into f's cycle immediately before target.
func insertBefore(f *faceRecord, target, newVertex VertexKey) {
	idx := indexOf(f.cycle, target)
	cyc := make([]VertexKey, 0, len(f.cycle)+1)
	cyc = append(cyc, f.cycle[:idx]...)
	cyc = append(cyc, newVertex)
	cyc = append(cyc, f.cycle[idx:]...)
	f.cycle = cyc
}

// thirdVertex returns the single element of a 3-element cycle that is
// neither a nor b.
func thirdVertex(cycle []VertexKey, a, b VertexKey) (VertexKey, bool) {
	if len(cycle) != 3 {
		return 0, false
	}
	for _, v := range cycle {
		if v != a && v != b {
			return v, true
		}
	}
	return 0, false
}

// SplitEdgeTriangle is the triangle-mesh variant of SplitEdge: rather than
// growing each incident face to a quad, it bisects each incident triangle
// (u, v, o) into two new triangles (u, w, o) and (w, v, o). On the
// boundary side (Outside), it simply installs the two new boundary
// half-edges. It fails with ErrNotTriangle if an incident non-boundary
// face is not a triangle.
func (m *Mesh) SplitEdgeTriangle(u, v VertexKey, t float64, allowBoundary bool) (w VertexKey, ok bool, err error) {
	if t <= 0 || t >= 1 {
		return 0, false, ErrInvalidParameter
	}
	fuv, ok1 := m.HalfEdgeFace(u, v)
	fvu, ok2 := m.HalfEdgeFace(v, u)
	if !ok1 || !ok2 {
		return 0, false, ErrUnknownKey
	}
	if (fuv == Outside || fvu == Outside) && !allowBoundary {
		return 0, false, nil
	}
	for _, f := range []FaceKey{fuv, fvu} {
		if f == Outside {
			continue
		}
		face, ok := m.faces[f]
		if !ok {
			return 0, false, ErrUnknownKey
		}
		if len(face.cycle) != 3 {
			return 0, false, ErrNotTriangle
		}
	}

	mid, err := m.EdgePoint(u, v, t)
	if err != nil {
		return 0, false, err
	}
	w = m.AddVertex(mid.X, mid.Y, mid.Z)

	m.delHalf(u, v)
	m.delHalf(v, u)

	bisect := func(from, to VertexKey, f FaceKey) error {
		if f == Outside {
			m.setHalf(from, w, Outside)
			m.setHalf(w, to, Outside)
			return nil
		}
		face, ok := m.faces[f]
		if !ok {
			return ErrUnknownKey
		}
		apex, ok := thirdVertex(face.cycle, from, to)
		if !ok {
			return ErrNotTriangle
		}
		m.removeFaceOnly(f)
		m.addFaceRaw([]VertexKey{from, w, apex})
		m.addFaceRaw([]VertexKey{w, to, apex})
		return nil
	}

	if err := bisect(u, v, fuv); err != nil {
		return 0, false, err
	}
	if err := bisect(v, u, fvu); err != nil {
		return 0, false, err
	}
	return w, true, nil
}

// SplitFace splits face fkey by a chord from u to v into two new faces: the
// arc of fkey's cycle from u to v (inclusive) and the arc from v to u
// (inclusive). The original face is deleted; orientation of each new face
// matches the original traversal sense. It fails with ErrNotOnFace if
// either vertex is not on the face, and ErrAdjacent if u and v are already
// cyclically adjacent (there is no chord to add).
func (m *Mesh) SplitFace(fkey FaceKey, u, v VertexKey) (FaceKey, FaceKey, error) {
	f, ok := m.faces[fkey]
	if !ok {
		return 0, 0, ErrUnknownKey
	}
	n := len(f.cycle)
	iu := indexOf(f.cycle, u)
	iv := indexOf(f.cycle, v)
	if iu == -1 || iv == -1 {
		return 0, 0, ErrNotOnFace
	}
	if (iu+1)%n == iv || (iv+1)%n == iu {
		return 0, 0, ErrAdjacent
	}

	arc1 := arcInclusive(f.cycle, iu, iv)
	arc2 := arcInclusive(f.cycle, iv, iu)

	m.removeFaceOnly(fkey)
	f1 := m.addFaceRaw(arc1)
	f2 := m.addFaceRaw(arc2)
	return f1, f2, nil
}

// arcInclusive returns the elements of cycle from index from to index to,
// inclusive, walking forward (wrapping around the end of the slice).
func arcInclusive(cycle []VertexKey, from, to int) []VertexKey {
	n := len(cycle)
	var out []VertexKey
	for i := from; ; i = (i + 1) % n {
		out = append(out, cycle[i])
		if i == to {
			break
		}
	}
	return out
}

// FlipEdge replaces the shared edge of the two triangles on either side of
// u-v with the opposite diagonal of their quadrilateral. Both (u,v) and
// (v,u) must map to triangular faces; it fails with ErrBoundaryFlip if
// either side is Outside, and ErrNotTriangle if either face is not a
// triangle.
func (m *Mesh) FlipEdge(u, v VertexKey) (FaceKey, FaceKey, error) {
	fuv, ok1 := m.HalfEdgeFace(u, v)
	fvu, ok2 := m.HalfEdgeFace(v, u)
	if !ok1 || !ok2 {
		return 0, 0, ErrUnknownKey
	}
	if fuv == Outside || fvu == Outside {
		return 0, 0, ErrBoundaryFlip
	}
	face1, ok := m.faces[fuv]
	if !ok {
		return 0, 0, ErrUnknownKey
	}
	face2, ok := m.faces[fvu]
	if !ok {
		return 0, 0, ErrUnknownKey
	}
	o1, ok := thirdVertex(face1.cycle, u, v)
	if !ok {
		return 0, 0, ErrNotTriangle
	}
	o2, ok := thirdVertex(face2.cycle, v, u)
	if !ok {
		return 0, 0, ErrNotTriangle
	}

	m.removeFaceOnly(fuv)
	m.removeFaceOnly(fvu)
	m.delHalf(u, v)
	m.delHalf(v, u)

	nf1 := m.addFaceRaw([]VertexKey{u, o2, o1})
	nf2 := m.addFaceRaw([]VertexKey{v, o1, o2})
	return nf1, nf2, nil
}

// InsertVertexIntoFace creates a new vertex at xyz, retires fkey, and
// creates one new triangular face per edge of the original cycle: for
// cycle edge (v_i, v_{i+1}), the new face (v_i, v_{i+1}, w). It returns the
// new vertex key and the keys of the newly created faces, in cycle order.
func (m *Mesh) InsertVertexIntoFace(fkey FaceKey, x, y, z float64) (VertexKey, []FaceKey, error) {
	f, ok := m.faces[fkey]
	if !ok {
		return 0, nil, ErrUnknownKey
	}
	cycle := make([]VertexKey, len(f.cycle))
	copy(cycle, f.cycle)

	w := m.AddVertex(x, y, z)
	return m.insertVertexIntoFaceCommon(cycle, fkey, w)
}

// InsertVertexIntoFaceWithKey is InsertVertexIntoFace with a caller-chosen
// vertex key instead of an allocated one, matching the mesh protocol's
// insert_vertex(fkey, key?, xyz) form.
func (m *Mesh) InsertVertexIntoFaceWithKey(fkey FaceKey, key VertexKey, x, y, z float64) ([]FaceKey, error) {
	f, ok := m.faces[fkey]
	if !ok {
		return nil, ErrUnknownKey
	}
	cycle := make([]VertexKey, len(f.cycle))
	copy(cycle, f.cycle)

	if err := m.AddVertexWithKey(key, x, y, z); err != nil {
		return nil, err
	}
	_, faces, err := m.insertVertexIntoFaceCommon(cycle, fkey, key)
	return faces, err
}

func (m *Mesh) insertVertexIntoFaceCommon(cycle []VertexKey, fkey FaceKey, w VertexKey) (VertexKey, []FaceKey, error) {
	m.removeFaceOnly(fkey)
	n := len(cycle)
	newFaces := make([]FaceKey, n)
	for i := 0; i < n; i++ {
		a := cycle[i]
		b := cycle[(i+1)%n]
		newFaces[i] = m.addFaceRaw([]VertexKey{a, b, w})
	}
	return w, newFaces, nil
}

// Dual returns the dual mesh M* of m: a vertex for each face of m (placed
// initially at that face's centroid) and a face for each interior vertex
// of m (boundary vertices yield no dual face — the cyclic walk used to
// build a Voronoi-style cell is only well defined away from the
// boundary). If every vertex of m lies on the boundary, Dual returns a
// mesh with no faces.
func Dual(m *Mesh) *Mesh {
	return DualWithCoords(m, func(fkey FaceKey) (float64, float64) {
		c, _ := m.FaceCentroid(fkey)
		return c.X, c.Y
	})
}

// DualWithCoords builds the dual mesh the same way Dual does, but places
// each dual vertex using coords(fkey) instead of the face centroid. This
// is the hook voronoi.FromDelaunay uses to place dual vertices at
// circumcenters.
func DualWithCoords(m *Mesh, coords func(fkey FaceKey) (x, y float64)) *Mesh {
	dual := New()
	faceToVertex := make(map[FaceKey]VertexKey, len(m.faces))
	for _, fkey := range m.Faces() {
		x, y := coords(fkey)
		faceToVertex[fkey] = dual.AddVertex(x, y, 0)
	}

	boundary := make(map[VertexKey]bool)
	for _, v := range m.VerticesOnBoundary() {
		boundary[v] = true
	}

	for _, vkey := range m.Vertices() {
		if boundary[vkey] {
			continue
		}
		faces, ok := m.VertexFaces(vkey, true)
		if !ok || len(faces) < 3 {
			continue
		}
		cyc := make([]VertexKey, len(faces))
		for i, f := range faces {
			cyc[i] = faceToVertex[f]
		}
		dual.AddFace(cyc)
	}
	return dual
}
