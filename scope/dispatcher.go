package scope

import (
	"github.com/richinsley/goscope/playback"
)

// Dispatcher drives one redraw: it reads the elapsed time once, computes
// the target frame for every channel, and hands each channel's path to the
// visitor. Dispatch never blocks and never mutates the clock, so calling
// it twice in a row for the same instant produces the same paths.
type Dispatcher struct {
	clock    *playback.Clock
	channels []*Channel
}

// NewDispatcher wires the clock to the channel set.
func NewDispatcher(clock *playback.Clock, channels []*Channel) *Dispatcher {
	return &Dispatcher{clock: clock, channels: channels}
}

// Dispatch builds the current path for every channel at the window's pixel
// size and passes it to visit.
func (d *Dispatcher) Dispatch(width, height float32, visit func(c *Channel, path []Vec2)) {
	elapsed := d.clock.Elapsed()
	for _, c := range d.channels {
		frame := int(c.FPS * elapsed)
		window := c.WindowAt(frame)
		visit(c, SamplesToPath(window, c.Rect, width, height))
	}
}
