// Package geom implements the planar geometric primitives and predicates
// that the mesh, delaunay, and voronoi packages build on: 2D/3D points,
// axis-aligned boxes, and the point-in-triangle, point-in-polygon,
// point-in-circle and circumcircle tests.
package geom

import "math"

// XY is a location in the plane.
type XY struct {
	X, Y float64
}

// Add returns the vector sum of p and q.
func (p XY) Add(q XY) XY {
	return XY{p.X + q.X, p.Y + q.Y}
}

// Sub returns the vector difference p - q.
func (p XY) Sub(q XY) XY {
	return XY{p.X - q.X, p.Y - q.Y}
}

// Scale returns p scaled by s.
func (p XY) Scale(s float64) XY {
	return XY{p.X * s, p.Y * s}
}

// Dot returns the dot product of p and q.
func (p XY) Dot(q XY) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z-component of the 3D cross product of p and q,
// treating both as vectors in the z=0 plane.
func (p XY) Cross(q XY) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the Euclidean length of p treated as a vector from the
// origin.
func (p XY) Length() float64 {
	return math.Sqrt(p.Dot(p))
}

// XYZ is a location in 3D space. Planar operations read only X and Y.
type XYZ struct {
	X, Y, Z float64
}

// XY projects the point onto the z=0 plane.
func (p XYZ) XY() XY {
	return XY{p.X, p.Y}
}
