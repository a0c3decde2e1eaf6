package playback

import "time"

// Clock maps wall-clock time to a position on the playback timeline. It is
// mutated only from the UI thread and never blocks. Until Bind is called
// the clock reads zero and every control operation is a no-op, so input
// during the loading phase falls through harmlessly.
//
// Exactly one of the start instant and the paused position drives Elapsed
// at any time: while paused, Elapsed returns the snapshotted position;
// while playing, it returns the wall time since the start instant.
type Clock struct {
	sampleRate   float64
	startInstant time.Time
	started      bool
	pausedAt     float64
	paused       bool
	controller   *Controller

	// now is swappable for tests.
	now func() time.Time
}

// NewClock creates an unbound clock for the given sample rate.
func NewClock(sampleRate float64) *Clock {
	return &Clock{sampleRate: sampleRate, now: time.Now}
}

// SampleRate returns the sample rate fixed at construction.
func (c *Clock) SampleRate() float64 { return c.sampleRate }

// Bound reports whether the audio service has handed back its controller.
func (c *Clock) Bound() bool { return c.controller != nil }

// Paused reports whether the timeline is currently frozen.
func (c *Clock) Paused() bool { return c.paused }

// Elapsed returns the current timeline position in seconds.
func (c *Clock) Elapsed() float64 {
	if c.paused {
		return c.pausedAt
	}
	if !c.started {
		return 0
	}
	return c.now().Sub(c.startInstant).Seconds()
}

// Bind attaches the start instant and controller echoed back by the audio
// service. Called once, after the audio output has started.
func (c *Clock) Bind(start time.Time, controller *Controller) {
	c.startInstant = start
	c.started = true
	c.controller = controller
}

// TogglePause flips between playing and paused.
func (c *Clock) TogglePause() {
	if !c.Bound() {
		return
	}
	if c.paused {
		c.Unpause()
	} else {
		c.Pause()
	}
}

// Pause freezes the timeline at its current position.
func (c *Clock) Pause() {
	if !c.Bound() || c.paused {
		return
	}
	c.controller.SetRate(-1.0)
	c.pausedAt = c.Elapsed()
	c.paused = true
}

// Unpause resumes the timeline from the paused position.
func (c *Clock) Unpause() {
	if !c.Bound() || !c.paused {
		return
	}
	c.controller.SetRate(1.0)
	c.startInstant = c.now().Add(-time.Duration(c.pausedAt * float64(time.Second)))
	c.paused = false
	c.pausedAt = 0
}

// Seek jumps the timeline to t seconds, preserving the pause state.
func (c *Clock) Seek(t float64) {
	if !c.Bound() || t < 0 {
		return
	}
	c.controller.SetSeek(t)
	c.startInstant = c.now().Add(-time.Duration(t * float64(time.Second)))
	if c.paused {
		c.pausedAt = t
	}
}

// MulVolume scales the volume cell by f, clamping at zero.
func (c *Clock) MulVolume(f float64) {
	if !c.Bound() {
		return
	}
	v := c.controller.Volume() * f
	if v < 0 {
		v = 0
	}
	c.controller.SetVolume(v)
}
