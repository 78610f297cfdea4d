package generate

import (
	"math"
	"math/rand"

	"github.com/go-geom/planarmesh/geom"
)

// PerlinGenerator samples 2D Perlin noise over a fixed grid of random unit
// gradients, for building non-uniform ("clustered") site clouds that stress
// a triangulator differently than uniform random sampling does.
type PerlinGenerator struct {
	box       geom.Box
	gradients [][]geom.XY
	originX   int
	originY   int
}

// NewPerlinGenerator constructs a generator that can sample noise anywhere
// within box.
func NewPerlinGenerator(box geom.Box, rnd *rand.Rand) PerlinGenerator {
	rounded := geom.Box{
		Min: geom.XY{X: math.Floor(box.Min.X) - 1, Y: math.Floor(box.Min.Y) - 1},
		Max: geom.XY{X: math.Ceil(box.Max.X) + 1, Y: math.Ceil(box.Max.Y) + 1},
	}

	gridw := int(rounded.Max.X) - int(rounded.Min.X) + 1
	gridh := int(rounded.Max.Y) - int(rounded.Min.Y) + 1

	gradients := make([][]geom.XY, gridw)
	for i := range gradients {
		gradients[i] = make([]geom.XY, gridh)
		for j := range gradients[i] {
			angle := rnd.Float64() * math.Pi * 2
			gradients[i][j] = geom.XY{X: math.Sin(angle), Y: math.Cos(angle)}
		}
	}
	return PerlinGenerator{
		box:       rounded,
		gradients: gradients,
		originX:   int(rounded.Min.X),
		originY:   int(rounded.Min.Y),
	}
}

// Sample returns the noise value at pt, in roughly [-1, 1].
func (p PerlinGenerator) Sample(pt geom.XY) float64 {
	x0 := int(pt.X - p.box.Min.X)
	x1 := x0 + 1
	y0 := int(pt.Y - p.box.Min.Y)
	y1 := y0 + 1

	n0 := p.dotGridGradient(x0, y0, pt)
	n1 := p.dotGridGradient(x1, y0, pt)
	n2 := p.dotGridGradient(x0, y1, pt)
	n3 := p.dotGridGradient(x1, y1, pt)

	sx := pt.X - float64(x0+p.originX)
	sy := pt.Y - float64(y0+p.originY)

	lerp := func(a, b, w float64) float64 {
		return (1-w)*a + w*b
	}
	return lerp(lerp(n0, n1, sx), lerp(n2, n3, sx), sy)
}

func (p PerlinGenerator) dotGridGradient(x, y int, pt geom.XY) float64 {
	distance := geom.XY{
		X: pt.X - float64(x+p.originX),
		Y: pt.Y - float64(y+p.originY),
	}
	return distance.Dot(p.gradients[x][y])
}

// ClusteredSites rejection-samples n points from box, keeping a candidate
// only where the Perlin field is at least threshold. This produces the kind of
// non-uniform clustering a uniform RandomSites call cannot, for exercising
// point location and flip-stack behavior in denser regions.
func ClusteredSites(rnd *rand.Rand, n int, box geom.Box, threshold float64) []geom.XY {
	field := NewPerlinGenerator(box, rnd)
	out := make([]geom.XY, 0, n)
	w := box.Max.X - box.Min.X
	h := box.Max.Y - box.Min.Y
	for len(out) < n {
		p := geom.XY{X: box.Min.X + rnd.Float64()*w, Y: box.Min.Y + rnd.Float64()*h}
		if field.Sample(p) >= threshold {
			out = append(out, p)
		}
	}
	return out
}
