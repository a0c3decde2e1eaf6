// Package wave holds the rendered audio handed to the visualizer and the
// padded per-channel sample buffers the stabilizer works on.
package wave

import "fmt"

// StereoSample is one frame of interleaved stereo audio.
type StereoSample struct {
	L, R float64
}

// RenderedAudio is the finished output of an offline render: a master bus
// plus one stereo stream per mix channel, with channel names in order.
type RenderedAudio struct {
	Master   []StereoSample
	Channels [][]StereoSample
	Names    []string
}

// Validate checks the input against the conditions that are fatal at
// startup: no channels, a name count that differs from the channel count,
// or a master shorter than two windows (2*windowSize samples).
func (r *RenderedAudio) Validate(windowSize int) error {
	if len(r.Channels) == 0 {
		return fmt.Errorf("rendered audio has no channels")
	}
	if len(r.Names) != len(r.Channels) {
		return fmt.Errorf("have %d channel names for %d channels", len(r.Names), len(r.Channels))
	}
	if len(r.Master) < 2*windowSize {
		return fmt.Errorf("master is %d samples, need at least %d", len(r.Master), 2*windowSize)
	}
	return nil
}

// Duration returns the length of the master bus in seconds.
func (r *RenderedAudio) Duration(sampleRate float64) float64 {
	return float64(len(r.Master)) / sampleRate
}
