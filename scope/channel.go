// Package scope turns precomputed index tables into per-frame display
// windows and 2D paths for the renderer.
package scope

import (
	"github.com/richinsley/goscope/stabilizer"
	"github.com/richinsley/goscope/wave"
)

// Rect is an axis-aligned rectangle in the normalized viewport space
// [-0.5, 0.5] x [-0.5, 0.5].
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Lerp maps a point in [0,1]^2 into the rectangle.
func (r Rect) Lerp(tx, ty float32) (float32, float32) {
	return r.MinX + (r.MaxX-r.MinX)*tx, r.MinY + (r.MaxY-r.MinY)*ty
}

// Channel is one oscilloscope trace: its padded sample buffer, the
// precomputed index table, and where on screen it lives. Built once at
// startup; the table is attached when precomputation finishes.
type Channel struct {
	Name       string
	Index      int
	Rect       Rect
	Buf        *wave.SampleBuffer
	Table      stabilizer.IndexTable
	WindowSize int
	FPS        float64
}

// WindowAt returns the display window for the given output frame, clamped
// to the last table entry so reads past the end of playback show the
// terminal zero pad.
func (c *Channel) WindowAt(frame int) []float64 {
	if len(c.Table) == 0 {
		return nil
	}
	if frame >= len(c.Table) {
		frame = len(c.Table) - 1
	}
	if frame < 0 {
		frame = 0
	}
	return c.Buf.Window(c.Table[frame])
}
