package geom

// Box is an axis-aligned bounding box, inclusive of its edges.
type Box struct {
	Min, Max XY
}

// Center returns the midpoint of the box.
func (b Box) Center() XY {
	return XY{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
	}
}

// Diagonal returns the Euclidean length of the box's diagonal.
func (b Box) Diagonal() float64 {
	return Distance(b.Min, b.Max)
}

// Contains reports whether p lies within the box, inclusive of its edges.
func (b Box) Contains(p XY) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Union returns the smallest box containing both b and other.
func (b Box) Union(other Box) Box {
	return Box{
		Min: XY{min(b.Min.X, other.Min.X), min(b.Min.Y, other.Min.Y)},
		Max: XY{max(b.Max.X, other.Max.X), max(b.Max.Y, other.Max.Y)},
	}
}

// Overlaps reports whether b and other share any area, including touching
// at an edge.
func (b Box) Overlaps(other Box) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y
}

// BoundingBox computes the axis-aligned bounding box of points. Panics if
// points is empty, matching the teacher corpus's convention of panicking on
// a caller precondition violation rather than returning a zero value that
// could be mistaken for a real degenerate box.
func BoundingBox(points []XY) Box {
	if len(points) == 0 {
		panic("geom: BoundingBox of empty point set")
	}
	box := Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min.X = min(box.Min.X, p.X)
		box.Min.Y = min(box.Min.Y, p.Y)
		box.Max.X = max(box.Max.X, p.X)
		box.Max.Y = max(box.Max.Y, p.Y)
	}
	return box
}
