package scope

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// simplifyTolerance is the Ramer-Douglas-Peucker tolerance in sample-space
// units. At 0.5 the simplified path is visually indistinguishable from the
// full one.
const simplifyTolerance = 0.5

// Vec2 is a point in centered pixel space: the window center is the
// origin, x grows right, y grows up.
type Vec2 struct {
	X, Y float32
}

// SamplesToPath maps a window of samples to a polyline inside the
// channel's viewport rectangle, scaled to the window's pixel size. Sample
// i with value s first becomes (i, (s*0.5+0.5)*N) in sample space, the
// sequence is simplified, and the survivors are interpolated into the
// rectangle.
//
// An empty window yields an empty path; a single sample yields one point.
func SamplesToPath(samples []float64, rect Rect, width, height float32) []Vec2 {
	n := len(samples)
	switch n {
	case 0:
		return nil
	case 1:
		x, y := rect.Lerp(0, float32(samples[0]*0.5+0.5))
		return []Vec2{{X: x * width, Y: y * height}}
	}

	line := make(orb.LineString, n)
	for i, s := range samples {
		line[i] = orb.Point{float64(i), (s*0.5 + 0.5) * float64(n)}
	}
	line = simplify.DouglasPeucker(simplifyTolerance).LineString(line)

	xFactor := 1.0 / float32(n-1)
	yFactor := 1.0 / float32(n)
	path := make([]Vec2, len(line))
	for i, p := range line {
		x, y := rect.Lerp(float32(p[0])*xFactor, float32(p[1])*yFactor)
		path[i] = Vec2{X: x * width, Y: y * height}
	}
	return path
}
