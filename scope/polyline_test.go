package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullRect = Rect{MinX: -0.5, MinY: -0.5, MaxX: 0.5, MaxY: 0.5}

func TestSamplesToPathEmpty(t *testing.T) {
	assert.Empty(t, SamplesToPath(nil, fullRect, 800, 600))
	assert.Empty(t, SamplesToPath([]float64{}, fullRect, 800, 600))
}

func TestSamplesToPathSinglePoint(t *testing.T) {
	path := SamplesToPath([]float64{0}, fullRect, 800, 600)
	require.Len(t, path, 1)
	// a zero sample sits at the left edge, vertically centered
	assert.InDelta(t, -400, path[0].X, 1e-4)
	assert.InDelta(t, 0, path[0].Y, 1e-4)
}

func TestSamplesToPathCollinearCollapses(t *testing.T) {
	// a linear ramp maps to a straight line; RDP keeps only the endpoints
	n := 257
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = -1 + 2*float64(i)/float64(n-1)
	}
	path := SamplesToPath(samples, fullRect, 1000, 1000)
	require.Len(t, path, 2)

	assert.InDelta(t, -500, path[0].X, 1e-3)
	assert.InDelta(t, -500, path[0].Y, 1e-3)
	assert.InDelta(t, 500, path[1].X, 1e-3)
	// the last sample maps to (s*0.5+0.5)*n/n = 1.0 of the rect height
	assert.InDelta(t, 500, path[1].Y, 1e-3)
}

func TestSamplesToPathFlatLine(t *testing.T) {
	samples := make([]float64, 100)
	path := SamplesToPath(samples, fullRect, 640, 480)
	require.Len(t, path, 2, "a silent window simplifies to a single segment")
	assert.InDelta(t, -320, path[0].X, 1e-3)
	assert.InDelta(t, 0, path[0].Y, 1e-3)
	assert.InDelta(t, 320, path[1].X, 1e-3)
	assert.InDelta(t, 0, path[1].Y, 1e-3)
}

func TestSamplesToPathRespectsViewportRect(t *testing.T) {
	rect := Rect{MinX: -0.5, MinY: 0.25, MaxX: 0.5, MaxY: 0.5}
	samples := make([]float64, 16)
	path := SamplesToPath(samples, rect, 100, 100)
	require.NotEmpty(t, path)
	for _, p := range path {
		assert.GreaterOrEqual(t, p.Y, float32(25.0)-1e-3)
		assert.LessOrEqual(t, p.Y, float32(50.0)+1e-3)
	}
}

func TestRectLerp(t *testing.T) {
	r := Rect{MinX: -0.5, MinY: 0.1, MaxX: 0.5, MaxY: 0.3}
	x, y := r.Lerp(0, 0)
	assert.InDelta(t, -0.5, x, 1e-6)
	assert.InDelta(t, 0.1, y, 1e-6)
	x, y = r.Lerp(1, 1)
	assert.InDelta(t, 0.5, x, 1e-6)
	assert.InDelta(t, 0.3, y, 1e-6)
	x, y = r.Lerp(0.5, 0.5)
	assert.InDelta(t, 0.0, x, 1e-6)
	assert.InDelta(t, 0.2, y, 1e-6)
}
