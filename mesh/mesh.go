// Package mesh implements a planar half-edge mesh: vertices and faces
// connected by a half-edge directory, together with the topology-changing
// operations (SplitEdge, SplitEdgeTriangle, SplitFace, FlipEdge,
// InsertVertexIntoFace, DeleteVertex, DeleteFace) used to build and rework
// it.
//
// The half-edge directory is modelled the way the spec describes it: a
// mapping from a vertex key u to a mapping from vertex key v to the face
// key that the directed edge (u -> v) belongs to, with Outside standing in
// for the unbounded exterior region. This is the "nested-map" half-edge
// representation rather than an explicit next/prev/twin record graph — it
// keeps mutation local (no pointer-chasing to relink), at the cost of an
// extra map lookup per traversal step.
//
// A Mesh is not safe for concurrent use. Every mutating method assumes
// exclusive ownership by the caller for the duration of the call; there is
// no internal locking.
package mesh

import (
	"errors"

	"github.com/go-geom/planarmesh/geom"
)

// VertexKey identifies a vertex within a Mesh. Keys are allocated
// monotonically and are never reused once a vertex is deleted.
type VertexKey int

// FaceKey identifies a face within a Mesh, or the sentinel Outside value
// representing the unbounded exterior region.
type FaceKey int

// Outside is the sentinel FaceKey representing the unbounded exterior
// region that lies outside the mesh's boundary.
const Outside FaceKey = -1

// Sentinel errors returned by mesh operations. Every precondition is
// checked up front; a returned error means no mutation took place.
var (
	ErrInvalidParameter = errors.New("mesh: invalid parameter")
	ErrUnknownKey       = errors.New("mesh: unknown vertex or face key")
	ErrNotOnFace        = errors.New("mesh: vertex is not on the named face")
	ErrAdjacent         = errors.New("mesh: vertices are already cyclically adjacent")
	ErrBoundaryFlip     = errors.New("mesh: cannot flip an edge on the boundary")
	ErrNotTriangle      = errors.New("mesh: face is not a triangle")
)

type vertexRecord struct {
	key  VertexKey
	xyz  geom.XYZ
}

type faceRecord struct {
	key   FaceKey
	cycle []VertexKey
}

// Mesh is a half-edge mesh of vertices and faces in the plane.
type Mesh struct {
	vertices map[VertexKey]*vertexRecord
	faces    map[FaceKey]*faceRecord
	half     map[VertexKey]map[VertexKey]FaceKey

	nextVertex VertexKey
	nextFace   FaceKey
}

// New returns an empty Mesh.
func New() *Mesh {
	return &Mesh{
		vertices: make(map[VertexKey]*vertexRecord),
		faces:    make(map[FaceKey]*faceRecord),
		half:     make(map[VertexKey]map[VertexKey]FaceKey),
	}
}

// AddVertex creates a new vertex at the given coordinates and returns its
// freshly allocated key.
func (m *Mesh) AddVertex(x, y, z float64) VertexKey {
	key := m.nextVertex
	m.nextVertex++
	m.vertices[key] = &vertexRecord{key: key, xyz: geom.XYZ{X: x, Y: y, Z: z}}
	return key
}

// AddVertexWithKey creates a new vertex at the given coordinates using a
// caller-supplied key. It fails if the key is already in use.
func (m *Mesh) AddVertexWithKey(key VertexKey, x, y, z float64) error {
	if _, exists := m.vertices[key]; exists {
		return ErrUnknownKey
	}
	m.vertices[key] = &vertexRecord{key: key, xyz: geom.XYZ{X: x, Y: y, Z: z}}
	if key >= m.nextVertex {
		m.nextVertex = key + 1
	}
	return nil
}

// setHalf installs the directory entry for directed edge (u -> v).
func (m *Mesh) setHalf(u, v VertexKey, f FaceKey) {
	row, ok := m.half[u]
	if !ok {
		row = make(map[VertexKey]FaceKey)
		m.half[u] = row
	}
	row[v] = f
}

// delHalf removes the directory entry for directed edge (u -> v), if any.
func (m *Mesh) delHalf(u, v VertexKey) {
	row, ok := m.half[u]
	if !ok {
		return
	}
	delete(row, v)
	if len(row) == 0 {
		delete(m.half, u)
	}
}

// HalfEdgeFace returns the face that directed edge (u -> v) belongs to (or
// Outside for a boundary edge), and whether that directed edge exists at
// all.
func (m *Mesh) HalfEdgeFace(u, v VertexKey) (FaceKey, bool) {
	row, ok := m.half[u]
	if !ok {
		return 0, false
	}
	f, ok := row[v]
	return f, ok
}

// addFaceRaw allocates a new face with the given cycle, installs its
// directed edges (overwriting whatever was there before), and returns its
// key. Callers must ensure the resulting directory state is consistent;
// unlike the public AddFace, addFaceRaw does not check for unknown or
// duplicate vertices. Neither of them checks for directed-edge conflicts.
func (m *Mesh) addFaceRaw(cycle []VertexKey) FaceKey {
	key := m.nextFace
	m.nextFace++
	return m.addFaceRawWithKey(key, cycle)
}

func (m *Mesh) addFaceRawWithKey(key FaceKey, cycle []VertexKey) FaceKey {
	cp := make([]VertexKey, len(cycle))
	copy(cp, cycle)
	m.faces[key] = &faceRecord{key: key, cycle: cp}
	n := len(cp)
	for i := 0; i < n; i++ {
		u, v := cp[i], cp[(i+1)%n]
		m.setHalf(u, v, key)
		// A freshly introduced directed edge's twin must also appear in
		// the directory (invariant 2): if nothing has claimed it yet,
		// it defaults to the unbounded exterior until some other face
		// claims it.
		if _, ok := m.half[v][u]; !ok {
			m.setHalf(v, u, Outside)
		}
	}
	if key >= m.nextFace {
		m.nextFace = key + 1
	}
	return key
}

// removeFaceOnly deletes a face record without touching the half-edge
// directory. It is used internally by operations that immediately rewrite
// every directed edge the face owned (split, flip); public callers should
// use DeleteFace instead, which also repairs the directory.
func (m *Mesh) removeFaceOnly(fkey FaceKey) {
	delete(m.faces, fkey)
}

// AddFace creates a new face with the given cyclic vertex sequence (length
// at least 3) and returns its freshly allocated key. It fails with
// ErrInvalidParameter if the cycle is too short, with ErrUnknownKey if any
// vertex key is not present in the mesh, and with ErrAdjacent if a vertex
// repeats within the cycle. It does not check that the new face's directed
// edges are free of conflicting ownership; the mesh-operation contract
// (SplitEdge, SplitFace, FlipEdge, InsertVertexIntoFace) is responsible for
// only ever proposing consistent cycles.
func (m *Mesh) AddFace(cycle []VertexKey) (FaceKey, error) {
	if len(cycle) < 3 {
		return 0, ErrInvalidParameter
	}
	seen := make(map[VertexKey]bool, len(cycle))
	for _, v := range cycle {
		if _, ok := m.vertices[v]; !ok {
			return 0, ErrUnknownKey
		}
		if seen[v] {
			return 0, ErrAdjacent
		}
		seen[v] = true
	}
	return m.addFaceRaw(cycle), nil
}

// DeleteFace removes a face from the mesh. Each of its directed edges is
// removed from the half-edge directory unless the twin direction still
// belongs to another real face, in which case the entry reverts to
// Outside rather than being deleted outright (so the twin's invariant that
// every directed edge has a counterpart in the directory keeps holding).
func (m *Mesh) DeleteFace(fkey FaceKey) error {
	f, ok := m.faces[fkey]
	if !ok {
		return ErrUnknownKey
	}
	n := len(f.cycle)
	for i := 0; i < n; i++ {
		u := f.cycle[i]
		v := f.cycle[(i+1)%n]
		twinFace, hasTwin := m.half[v][u]
		if hasTwin && twinFace != Outside {
			m.setHalf(u, v, Outside)
		} else {
			m.delHalf(u, v)
			m.delHalf(v, u)
		}
	}
	delete(m.faces, fkey)
	return nil
}

// DeleteVertex removes a vertex and every face incident to it, then purges
// any remaining half-edge directory entries that mention the vertex. The
// exposed boundary of the removed region becomes Outside.
func (m *Mesh) DeleteVertex(key VertexKey) error {
	if _, ok := m.vertices[key]; !ok {
		return ErrUnknownKey
	}
	for _, fkey := range m.incidentFaces(key) {
		_ = m.DeleteFace(fkey)
	}
	for other := range m.half[key] {
		m.delHalf(other, key)
	}
	delete(m.half, key)
	delete(m.vertices, key)
	return nil
}

// incidentFaces returns the distinct faces whose cycle contains key, found
// by a linear scan of all faces (the spec explicitly allows a linear scan
// where a hierarchy would otherwise be used, as long as the observable
// result is unchanged).
func (m *Mesh) incidentFaces(key VertexKey) []FaceKey {
	var out []FaceKey
	for fkey, f := range m.faces {
		for _, v := range f.cycle {
			if v == key {
				out = append(out, fkey)
				break
			}
		}
	}
	return out
}

// Vertices returns every vertex key currently in the mesh, in ascending
// order.
func (m *Mesh) Vertices() []VertexKey {
	out := make([]VertexKey, 0, len(m.vertices))
	for k := range m.vertices {
		out = append(out, k)
	}
	sortVertexKeys(out)
	return out
}

// Faces returns every face key currently in the mesh, in ascending order.
func (m *Mesh) Faces() []FaceKey {
	out := make([]FaceKey, 0, len(m.faces))
	for k := range m.faces {
		out = append(out, k)
	}
	sortFaceKeys(out)
	return out
}

// Edges returns every undirected edge present in the half-edge directory
// (including boundary edges), each reported once as its two endpoint keys
// in ascending order.
func (m *Mesh) Edges() [][2]VertexKey {
	seen := make(map[[2]VertexKey]bool)
	var out [][2]VertexKey
	for u, row := range m.half {
		for v := range row {
			a, b := u, v
			if a > b {
				a, b = b, a
			}
			pair := [2]VertexKey{a, b}
			if seen[pair] {
				continue
			}
			seen[pair] = true
			out = append(out, pair)
		}
	}
	return out
}

// VerticesOnBoundary returns every vertex with at least one incident
// half-edge that maps to Outside.
func (m *Mesh) VerticesOnBoundary() []VertexKey {
	var out []VertexKey
	for v, row := range m.half {
		for _, f := range row {
			if f == Outside {
				out = append(out, v)
				break
			}
		}
	}
	sortVertexKeys(out)
	return out
}

// VertexCoordinates returns the coordinates of the named vertex.
func (m *Mesh) VertexCoordinates(key VertexKey) (geom.XYZ, error) {
	v, ok := m.vertices[key]
	if !ok {
		return geom.XYZ{}, ErrUnknownKey
	}
	return v.xyz, nil
}

// FaceVertices returns the ordered vertex cycle of the named face.
func (m *Mesh) FaceVertices(fkey FaceKey) ([]VertexKey, error) {
	f, ok := m.faces[fkey]
	if !ok {
		return nil, ErrUnknownKey
	}
	out := make([]VertexKey, len(f.cycle))
	copy(out, f.cycle)
	return out, nil
}

// FaceCoordinates returns the coordinates of the named face's vertices, in
// cycle order.
func (m *Mesh) FaceCoordinates(fkey FaceKey) ([]geom.XYZ, error) {
	f, ok := m.faces[fkey]
	if !ok {
		return nil, ErrUnknownKey
	}
	out := make([]geom.XYZ, len(f.cycle))
	for i, v := range f.cycle {
		out[i] = m.vertices[v].xyz
	}
	return out, nil
}

// FaceCentroid returns the planar (xy) centroid of the named face.
func (m *Mesh) FaceCentroid(fkey FaceKey) (geom.XY, error) {
	coords, err := m.FaceCoordinates(fkey)
	if err != nil {
		return geom.XY{}, err
	}
	pts := make([]geom.XY, len(coords))
	for i, c := range coords {
		pts[i] = c.XY()
	}
	return geom.Centroid(pts), nil
}

// EdgePoint interpolates the coordinates of directed edge (u -> v) at
// parameter t, measured from u (t=0 is u, t=1 is v).
func (m *Mesh) EdgePoint(u, v VertexKey, t float64) (geom.XYZ, error) {
	pu, ok := m.vertices[u]
	if !ok {
		return geom.XYZ{}, ErrUnknownKey
	}
	pv, ok := m.vertices[v]
	if !ok {
		return geom.XYZ{}, ErrUnknownKey
	}
	return geom.XYZ{
		X: pu.xyz.X + (pv.xyz.X-pu.xyz.X)*t,
		Y: pu.xyz.Y + (pv.xyz.Y-pu.xyz.Y)*t,
		Z: pu.xyz.Z + (pv.xyz.Z-pu.xyz.Z)*t,
	}, nil
}

// VertexFaces returns the faces incident to key. When ordered is true, the
// faces are returned walking cyclically around the vertex using the
// half-edge directory; this is only well defined for an interior vertex —
// for a boundary vertex it returns the open walk from one boundary edge to
// the other. When ordered is false, the faces are returned in no
// particular order. The bool result is false if key is not a vertex of the
// mesh.
func (m *Mesh) VertexFaces(key VertexKey, ordered bool) ([]FaceKey, bool) {
	if _, ok := m.vertices[key]; !ok {
		return nil, false
	}
	row := m.half[key]
	if len(row) == 0 {
		return nil, true
	}
	if !ordered {
		seen := make(map[FaceKey]bool)
		var out []FaceKey
		for _, f := range row {
			if f == Outside || seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
		return out, true
	}

	// Start at the neighbor w whose directed edge into key is the
	// boundary (half[w][key] == Outside), not one whose edge out of key
	// is boundary — starting there would make the very first row[w]
	// lookup below read Outside and terminate immediately.
	start := -1
	for w := range row {
		if f, ok := m.half[w][key]; ok && f == Outside {
			start = int(w)
			break
		}
	}
	if start == -1 {
		for w := range row {
			start = int(w)
			break
		}
	}

	var out []FaceKey
	w := VertexKey(start)
	visited := make(map[VertexKey]bool)
	for {
		f, ok := row[w]
		if !ok || f == Outside {
			break
		}
		out = append(out, f)
		face := m.faces[f]
		idx := indexOf(face.cycle, key)
		prev := face.cycle[(idx-1+len(face.cycle))%len(face.cycle)]
		if prev == VertexKey(start) {
			break
		}
		if visited[prev] {
			break
		}
		visited[prev] = true
		w = prev
	}
	return out, true
}

func indexOf(cycle []VertexKey, key VertexKey) int {
	for i, v := range cycle {
		if v == key {
			return i
		}
	}
	return -1
}
