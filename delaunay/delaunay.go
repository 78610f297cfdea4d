// Package delaunay builds a Delaunay triangulation of a planar point set
// using incremental randomized insertion with Bowyer-Watson realized as
// Lawson edge-flipping, on top of the half-edge mesh from package mesh.
package delaunay

import (
	"math/rand"

	"github.com/go-geom/planarmesh/geom"
	"github.com/go-geom/planarmesh/mesh"
	"github.com/go-geom/planarmesh/rtree"
)

// defaultEpsilon is the magnitude of the jitter applied to each input site
// to break exact colinearity and cocircularity.
const defaultEpsilon = 1e-12

// superScale is the multiplier (relative to the input's bounding-box
// diagonal) used to size the bootstrap super-triangle so that it
// comfortably encloses every jittered site.
const superScale = 300

// Option configures a call to Triangulate.
type Option func(*Options)

// Options carries the tunable parameters of Triangulate: the jitter
// magnitude, the random source used to generate it, and the optional
// boundary/hole clipping polygons.
type Options struct {
	Epsilon  float64
	Rand     *rand.Rand
	Boundary []geom.XY
	Holes    [][]geom.XY
	UseRTree bool
}

// WithEpsilon overrides the default jitter magnitude (1e-12).
func WithEpsilon(eps float64) Option {
	return func(o *Options) { o.Epsilon = eps }
}

// WithRand supplies the random source used for jitter, for deterministic,
// reproducible triangulations in tests.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) { o.Rand = r }
}

// WithBoundary clips the triangulation to faces whose centroid lies inside
// the given polygon.
func WithBoundary(polygon []geom.XY) Option {
	return func(o *Options) { o.Boundary = polygon }
}

// WithHoles removes faces whose centroid lies inside any of the given
// polygons.
func WithHoles(holes [][]geom.XY) Option {
	return func(o *Options) { o.Holes = holes }
}

// WithRTreeAcceleration enables rtree-backed point location instead of a
// pure linear scan over faces. The rtree only narrows the candidate set
// before the exact geom.PointInTriangle check; it never changes the
// triangulation that results.
func WithRTreeAcceleration() Option {
	return func(o *Options) { o.UseRTree = true }
}

func resolveOptions(opts []Option) Options {
	o := Options{Epsilon: defaultEpsilon}
	for _, apply := range opts {
		apply(&o)
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(1))
	}
	return o
}

// Result is the outcome of a Triangulate call.
type Result struct {
	// Triangles lists each surviving face as a triplet of indices into the
	// original points slice, in face-key order.
	Triangles [][3]int
	// Mesh is the underlying half-edge mesh the triangulation was built
	// in, with the super-triangle already removed.
	Mesh *mesh.Mesh
	// Skipped counts sites that point location failed to place. This
	// should not occur after the super-triangle bootstrap; it is surfaced
	// as a diagnostic count rather than an error.
	Skipped int
}

// Triangulate computes the Delaunay triangulation of points.
func Triangulate(points []geom.XY, opts ...Option) (*Result, error) {
	o := resolveOptions(opts)

	m := mesh.New()

	jittered := make([]geom.XY, len(points))
	for i, p := range points {
		jittered[i] = geom.XY{
			X: p.X + (o.Rand.Float64()*2-1)*o.Epsilon,
			Y: p.Y + (o.Rand.Float64()*2-1)*o.Epsilon,
		}
	}

	s0, s1, s2 := bootstrapSuperTriangle(m, jittered)
	superFace, err := m.AddFace([]mesh.VertexKey{s0, s1, s2})
	if err != nil {
		return nil, err
	}

	loc := newLocator(m, o.UseRTree)
	loc.add(superFace)

	// vertexToIndex maps the mesh's own freshly allocated vertex keys back
	// to the caller's point indices, so the super-triangle's keys (0, 1,
	// 2) never collide with input-site keys.
	vertexToIndex := make(map[mesh.VertexKey]int, len(points))

	skipped := 0
	for i := range points {
		p := jittered[i]

		host, ok := loc.locate(m, p)
		if !ok {
			skipped++
			continue
		}

		v, newFaces, err := m.InsertVertexIntoFace(host, p.X, p.Y, 0)
		if err != nil {
			return nil, err
		}
		vertexToIndex[v] = i
		loc.remove(host)
		for _, f := range newFaces {
			loc.add(f)
		}

		stack := append([]mesh.FaceKey(nil), newFaces...)
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			a, b, ok := oppositeEdge(m, f, v)
			if !ok {
				continue
			}
			fPrime, ok := m.HalfEdgeFace(b, a)
			if !ok || fPrime == mesh.Outside {
				continue
			}
			cycle, err := m.FaceVertices(fPrime)
			if err != nil || len(cycle) != 3 {
				continue
			}
			apex, ok := thirdVertex(cycle, a, b)
			if !ok {
				continue
			}

			ca, _ := m.VertexCoordinates(a)
			cb, _ := m.VertexCoordinates(b)
			co, _ := m.VertexCoordinates(apex)
			circ, err := geom.CircumCircle(ca.XY(), cb.XY(), co.XY())
			if err != nil {
				continue
			}
			if !geom.PointInCircle(p, circ) {
				continue
			}

			loc.remove(f)
			loc.remove(fPrime)
			nf1, nf2, err := m.FlipEdge(a, b)
			if err != nil {
				continue
			}
			loc.add(nf1)
			loc.add(nf2)
			stack = append(stack, nf1, nf2)
		}
	}

	for _, s := range []mesh.VertexKey{s0, s1, s2} {
		for _, f := range incidentOf(m, s) {
			loc.remove(f)
		}
		if err := m.DeleteVertex(s); err != nil {
			return nil, err
		}
	}

	if o.Boundary != nil {
		clipOutside(m, o.Boundary)
	}
	for _, hole := range o.Holes {
		clipInside(m, hole)
	}

	triangles := make([][3]int, 0, len(m.Faces()))
	for _, f := range m.Faces() {
		cycle, err := m.FaceVertices(f)
		if err != nil || len(cycle) != 3 {
			continue
		}
		triangles = append(triangles, [3]int{
			vertexToIndex[cycle[0]],
			vertexToIndex[cycle[1]],
			vertexToIndex[cycle[2]],
		})
	}

	return &Result{Triangles: triangles, Mesh: m, Skipped: skipped}, nil
}

// bootstrapSuperTriangle adds a triangle comfortably enclosing every point
// in pts and returns its three fresh vertex keys.
func bootstrapSuperTriangle(m *mesh.Mesh, pts []geom.XY) (mesh.VertexKey, mesh.VertexKey, mesh.VertexKey) {
	box := geom.BoundingBox(pts)
	c := geom.Centroid(pts)
	d := box.Diagonal()
	if d == 0 {
		d = 1
	}

	p0 := geom.XY{X: c.X + d*superScale*0, Y: c.Y + d*superScale*2}
	p1 := geom.XY{X: c.X + d*superScale*1.7320508075688772, Y: c.Y + d*superScale*-1}
	p2 := geom.XY{X: c.X + d*superScale*-1.7320508075688772, Y: c.Y + d*superScale*-1}

	s0 := m.AddVertex(p0.X, p0.Y, 0)
	s1 := m.AddVertex(p1.X, p1.Y, 0)
	s2 := m.AddVertex(p2.X, p2.Y, 0)
	return s0, s1, s2
}

// oppositeEdge returns the two vertices of f's triangle other than apex, in
// the cycle order that keeps the resulting edge's left face equal to f.
func oppositeEdge(m *mesh.Mesh, f mesh.FaceKey, apex mesh.VertexKey) (mesh.VertexKey, mesh.VertexKey, bool) {
	cycle, err := m.FaceVertices(f)
	if err != nil || len(cycle) != 3 {
		return 0, 0, false
	}
	for i, v := range cycle {
		if v == apex {
			return cycle[(i+1)%3], cycle[(i+2)%3], true
		}
	}
	return 0, 0, false
}

func thirdVertex(cycle []mesh.VertexKey, a, b mesh.VertexKey) (mesh.VertexKey, bool) {
	for _, v := range cycle {
		if v != a && v != b {
			return v, true
		}
	}
	return 0, false
}

func incidentOf(m *mesh.Mesh, v mesh.VertexKey) []mesh.FaceKey {
	faces, ok := m.VertexFaces(v, false)
	if !ok {
		return nil
	}
	return faces
}

func clipOutside(m *mesh.Mesh, boundary []geom.XY) {
	for _, f := range m.Faces() {
		c, err := m.FaceCentroid(f)
		if err != nil {
			continue
		}
		if !geom.PointInPolygon(c, boundary) {
			_ = m.DeleteFace(f)
		}
	}
}

func clipInside(m *mesh.Mesh, hole []geom.XY) {
	for _, f := range m.Faces() {
		c, err := m.FaceCentroid(f)
		if err != nil {
			continue
		}
		if geom.PointInPolygon(c, hole) {
			_ = m.DeleteFace(f)
		}
	}
}

// locator wraps point location, optionally accelerated by an rtree of
// current face bounding boxes. The rtree is only ever used to narrow the
// candidate set; every candidate still passes through the exact
// geom.PointInTriangle test, and locate falls back to a full linear scan
// if the rtree path turns up nothing, so output is identical to a pure
// linear scan either way.
type locator struct {
	m        *mesh.Mesh
	useRTree bool
	tree     *rtree.RTree
	boxes    map[mesh.FaceKey]rtree.Box
}

func newLocator(m *mesh.Mesh, useRTree bool) *locator {
	l := &locator{m: m, useRTree: useRTree}
	if useRTree {
		l.tree = &rtree.RTree{}
		l.boxes = make(map[mesh.FaceKey]rtree.Box)
	}
	return l
}

func (l *locator) add(f mesh.FaceKey) {
	if !l.useRTree {
		return
	}
	coords, err := l.m.FaceCoordinates(f)
	if err != nil || len(coords) == 0 {
		return
	}
	box := rtree.Box{MinX: coords[0].X, MinY: coords[0].Y, MaxX: coords[0].X, MaxY: coords[0].Y}
	for _, c := range coords[1:] {
		box.MinX = min(box.MinX, c.X)
		box.MinY = min(box.MinY, c.Y)
		box.MaxX = max(box.MaxX, c.X)
		box.MaxY = max(box.MaxY, c.Y)
	}
	l.boxes[f] = box
	l.tree.Insert(box, int(f))
}

func (l *locator) remove(f mesh.FaceKey) {
	if !l.useRTree {
		return
	}
	box, ok := l.boxes[f]
	if !ok {
		return
	}
	l.tree.Delete(box, int(f))
	delete(l.boxes, f)
}

// locate finds the face containing p.
func (l *locator) locate(m *mesh.Mesh, p geom.XY) (mesh.FaceKey, bool) {
	if l.useRTree {
		queryBox := rtree.BoxOfPoint(p.X, p.Y)
		var found mesh.FaceKey
		hasFound := false
		_ = l.tree.RangeSearch(queryBox, func(recordID int) error {
			f := mesh.FaceKey(recordID)
			coords, err := m.FaceCoordinates(f)
			if err != nil || len(coords) != 3 {
				return nil
			}
			tri := geom.Triangle{coords[0].XY(), coords[1].XY(), coords[2].XY()}
			if geom.PointInTriangle(p, tri, true) {
				found, hasFound = f, true
				return rtree.Stop
			}
			return nil
		})
		if hasFound {
			return found, true
		}
	}

	for _, f := range m.Faces() {
		coords, err := m.FaceCoordinates(f)
		if err != nil || len(coords) != 3 {
			continue
		}
		tri := geom.Triangle{coords[0].XY(), coords[1].XY(), coords[2].XY()}
		if geom.PointInTriangle(p, tri, true) {
			return f, true
		}
	}
	return 0, false
}
