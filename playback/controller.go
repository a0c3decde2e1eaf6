// Package playback owns the wall-clock timeline the UI advances against
// and the audio output service it stays synchronized with.
package playback

import (
	"math"
	"sync/atomic"
)

// Controller is the set of shared cells the audio service exposes for
// runtime control: rate (1.0 playing, -1.0 paused), seek position in
// seconds, and linear volume gain. Each cell is an independent atomic;
// the UI thread writes, the audio callback reads. The seek cell carries a
// generation counter so the callback can tell a fresh request from a stale
// value, even when the target position repeats.
type Controller struct {
	rate    atomic.Uint32
	seek    atomic.Uint64
	seekGen atomic.Uint64
	volume  atomic.Uint64
}

// NewController returns a controller at rate 1.0, seek 0, volume 1.0.
func NewController() *Controller {
	c := &Controller{}
	c.SetRate(1.0)
	c.SetVolume(1.0)
	return c
}

// Rate returns the playback rate cell.
func (c *Controller) Rate() float32 {
	return math.Float32frombits(c.rate.Load())
}

// SetRate stores the playback rate cell.
func (c *Controller) SetRate(r float32) {
	c.rate.Store(math.Float32bits(r))
}

// Volume returns the linear gain cell.
func (c *Controller) Volume() float64 {
	return math.Float64frombits(c.volume.Load())
}

// SetVolume stores the linear gain cell.
func (c *Controller) SetVolume(v float64) {
	c.volume.Store(math.Float64bits(v))
}

// Seek returns the last requested seek position and its generation.
func (c *Controller) Seek() (seconds float64, generation uint64) {
	return math.Float64frombits(c.seek.Load()), c.seekGen.Load()
}

// SetSeek requests a jump to the given position in seconds.
func (c *Controller) SetSeek(seconds float64) {
	c.seek.Store(math.Float64bits(seconds))
	c.seekGen.Add(1)
}
