package geom

import (
	"errors"
	"math"
)

// ErrDegenerate is returned by CircumCircle when its three input points are
// colinear, so no finite circumcircle exists.
var ErrDegenerate = errors.New("geom: degenerate geometric construction")

// Distance returns the Euclidean distance between p and q.
func Distance(p, q XY) float64 {
	return p.Sub(q).Length()
}

// Centroid returns the arithmetic mean of points. Panics if points is empty.
func Centroid(points []XY) XY {
	if len(points) == 0 {
		panic("geom: Centroid of empty point set")
	}
	var sum XY
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// Triangle is three ordered vertices in the plane.
type Triangle [3]XY

// PointInTriangle reports whether p lies inside tri. When inclusive is
// true, points lying exactly on an edge or vertex are also considered
// inside. The test uses the same-sign check of the three edge cross
// products, so it is independent of the triangle's winding order.
func PointInTriangle(p XY, tri Triangle, inclusive bool) bool {
	d1 := cross(tri[0], tri[1], p)
	d2 := cross(tri[1], tri[2], p)
	d3 := cross(tri[2], tri[0], p)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	sameSign := !(hasNeg && hasPos)

	if inclusive {
		return sameSign
	}
	return sameSign && d1 != 0 && d2 != 0 && d3 != 0
}

// cross returns the signed area (scaled by 2) of the triangle (a, b, c):
// positive when a, b, c turn counter-clockwise.
func cross(a, b, c XY) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// PointInPolygon reports whether p lies inside polygon using the standard
// ray-casting (even-odd) rule. The polygon is treated as implicitly closed:
// the edge from the last vertex back to the first is included even if the
// caller did not repeat the first point at the end of the slice.
func PointInPolygon(p XY, polygon []XY) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := polygon[i], polygon[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xIntersect := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Circle is a circle in the plane, together with the normal of the plane it
// was derived in (always (0, 0, 1) for the planar case, but callers that
// embed this in a 3D pipeline may care about orientation).
type Circle struct {
	Center XY
	Radius float64
	Normal XYZ
}

// CircumCircle returns the unique circle passing through a, b and c. It
// fails with ErrDegenerate when the three points are colinear (within a
// small numerical tolerance), since no finite circumcircle exists in that
// case.
func CircumCircle(a, b, c XY) (Circle, error) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		return Circle{}, ErrDegenerate
	}

	aSq := a.Dot(a)
	bSq := b.Dot(b)
	cSq := c.Dot(c)

	ux := (aSq*(b.Y-c.Y) + bSq*(c.Y-a.Y) + cSq*(a.Y-b.Y)) / d
	uy := (aSq*(c.X-b.X) + bSq*(a.X-c.X) + cSq*(b.X-a.X)) / d

	center := XY{ux, uy}
	return Circle{
		Center: center,
		Radius: Distance(center, a),
		Normal: XYZ{0, 0, 1},
	}, nil
}

// PointInCircle reports whether p lies strictly inside c (strict
// inequality, matching the spec's treatment of points on the boundary as
// outside).
func PointInCircle(p XY, c Circle) bool {
	return Distance(p, c.Center) < c.Radius
}
