// Package renderer draws the oscilloscope scene: a retained set of
// polylines, solid quads, and text labels in centered pixel space, plus
// the application loop that keeps it in sync with playback.
package renderer

import (
	"github.com/richinsley/goscope/scope"
)

// Polyline is a stroked path node. Points are in centered pixel space and
// replaced wholesale each frame by the dispatcher.
type Polyline struct {
	Points []scope.Vec2
	Color  [4]float32
	Hidden bool
}

// Quad is a solid rectangle node. Min is the bottom-left corner, Max the
// top-right, in centered pixel space.
type Quad struct {
	Min, Max scope.Vec2
	Color    [4]float32
	Hidden   bool
}

// Label is a text node. X, Y give the top-left corner of the text box in
// centered pixel space; Size is the line height in pixels.
type Label struct {
	Text   string
	X, Y   float32
	Size   float32
	Color  [4]float32
	Hidden bool

	// texture cache, owned by the renderer
	tex     uint32
	texText string
}

// Measure returns the on-screen pixel size of the label's text box.
func (l *Label) Measure() (w, h float32) {
	tw, th := measureText(l.Text)
	scale := l.Size / float32(th)
	return float32(tw) * scale, l.Size
}

// Scene is the retained node set, drawn back to front: quads, polylines,
// labels. Only the UI thread touches it.
type Scene struct {
	Quads     []*Quad
	Polylines []*Polyline
	Labels    []*Label
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) AddQuad(q *Quad) *Quad {
	s.Quads = append(s.Quads, q)
	return q
}

func (s *Scene) AddPolyline(p *Polyline) *Polyline {
	s.Polylines = append(s.Polylines, p)
	return p
}

func (s *Scene) AddLabel(l *Label) *Label {
	s.Labels = append(s.Labels, l)
	return l
}

// RemoveLabel despawns a label and releases its texture.
func (s *Scene) RemoveLabel(l *Label) {
	for i, have := range s.Labels {
		if have == l {
			s.Labels = append(s.Labels[:i], s.Labels[i+1:]...)
			releaseLabel(l)
			return
		}
	}
}
