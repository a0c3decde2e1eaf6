// Package stabilizer precomputes, for every output video frame of a
// channel, the sample index of the window to display, such that successive
// frames show nearly the same waveform. Candidate windows are anchored at
// positive-going zero crossings near the nominal playback cursor and scored
// against the previously chosen window.
package stabilizer

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"

	"github.com/richinsley/goscope/wave"
)

const (
	// DefaultWindowSize is the number of samples displayed per frame.
	DefaultWindowSize = 4096
	// DefaultSearchRadius bounds the zero-crossing search behind the
	// nominal cursor. 800 samples covers a half period of any audible
	// fundamental at common sample rates.
	DefaultSearchRadius = 800
	// DefaultFPS is the output video frame rate the table is built for.
	DefaultFPS = 60.0
)

// Metric selects how candidate windows are compared to the previous frame's
// window. A stabilizer uses one metric for its whole lifetime.
type Metric int

const (
	// MetricTimeDomain scores a candidate by the summed absolute sample
	// difference against the previous window. Lower is better. This is
	// the shipping default.
	MetricTimeDomain Metric = iota
	// MetricSpectral scores a candidate by the unconjugated cross
	// correlation of its spectrum with the previous window's spectrum.
	// Higher is better.
	MetricSpectral
)

// ParseMetric maps a config string to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", "time", "time-domain":
		return MetricTimeDomain, nil
	case "spectral", "fft":
		return MetricSpectral, nil
	default:
		return 0, fmt.Errorf("unknown stabilizer metric %q", s)
	}
}

// Config carries the stabilizer tuning for one channel.
type Config struct {
	WindowSize   int
	SearchRadius int
	FPS          float64
	SampleRate   float64
	Metric       Metric
}

// Validate rejects parameter combinations the search cannot handle.
func (c Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("window size must be positive, got %d", c.WindowSize)
	}
	if c.SearchRadius <= 0 || c.SearchRadius > c.WindowSize {
		return fmt.Errorf("search radius must be in (0, %d], got %d", c.WindowSize, c.SearchRadius)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %v", c.FPS)
	}
	if c.SampleRate < 1 {
		return fmt.Errorf("sample rate must be at least 1 Hz, got %v", c.SampleRate)
	}
	return nil
}

// IndexTable holds, for each output frame, the right edge of the window to
// display. The final entry is always the buffer length, a pad of zeros
// shown as a flat line once playback has ended.
type IndexTable []int

// ComputeTable runs the per-frame search over the whole buffer. It is a
// pure function of its inputs: the same buffer and config always produce
// the same table.
func ComputeTable(buf *wave.SampleBuffer, cfg Config) IndexTable {
	data := buf.Samples()
	b := cfg.WindowSize

	var table IndexTable
	prev := 2 * b
	var prevSpec []complex128
	if cfg.Metric == MetricSpectral {
		prevSpec = make([]complex128, b)
	}

	for k := 0; ; k++ {
		cursor := 2*b + int(cfg.SampleRate*(float64(k)/cfg.FPS))
		if cursor > len(data) {
			table = append(table, len(data))
			break
		}

		switch cfg.Metric {
		case MetricSpectral:
			prev, prevSpec = bestBySpectrum(data, cursor, prev, prevSpec, cfg)
		default:
			prev = bestByDifference(data, cursor, prev, cfg)
		}

		table = append(table, clamp(prev+b/2, 2*b, len(data)))
	}
	return table
}

// bestByDifference picks the positive-going zero crossing within the search
// radius whose trailing window differs least from the previous window.
// Candidates are visited in decreasing index order; exact ties keep the
// first candidate seen. With no crossing in range, the nominal cursor wins.
func bestByDifference(data []float64, cursor, prev int, cfg Config) int {
	best := -1
	bestScore := 0.0
	for off := 0; off < cfg.SearchRadius; off++ {
		x := cursor - off
		if x >= len(data) {
			continue
		}
		if !(data[x] >= 0 && data[x-1] < 0) {
			continue
		}
		score := 0.0
		for j := 1; j <= cfg.WindowSize; j++ {
			score += abs(data[prev-j] - data[x-j])
		}
		if best < 0 || score < bestScore {
			best = x
			bestScore = score
		}
	}
	if best < 0 {
		return cursor
	}
	return best
}

// bestBySpectrum scores each crossing by the cross correlation of its
// spectrum with the previous winner's spectrum, without conjugation: the
// inner product of the two spectra viewed as real vectors, normalized by
// the window size. The winning candidate's spectrum carries forward.
func bestBySpectrum(data []float64, cursor, prev int, prevSpec []complex128, cfg Config) (int, []complex128) {
	best := -1
	bestScore := 0.0
	var bestSpec []complex128
	for off := 0; off < cfg.SearchRadius; off++ {
		x := cursor - off
		if x >= len(data) {
			continue
		}
		if !(data[x] >= 0 && data[x-1] < 0) {
			continue
		}
		spec := fft.FFTReal(data[x-cfg.WindowSize : x])
		score := crossCorrelation(prevSpec, spec)
		if best < 0 || score > bestScore {
			best = x
			bestScore = score
			bestSpec = spec
		}
	}
	if best < 0 {
		return cursor, fft.FFTReal(data[cursor-cfg.WindowSize : cursor])
	}
	return best, bestSpec
}

func crossCorrelation(a, b []complex128) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += real(a[i])*real(b[i]) + imag(a[i])*imag(b[i])
	}
	return sum / float64(n)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
