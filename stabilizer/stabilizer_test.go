package stabilizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/richinsley/goscope/wave"
)

func sineStereo(freq, seconds, sampleRate float64) []wave.StereoSample {
	n := int(seconds * sampleRate)
	out := make([]wave.StereoSample, n)
	for i := range out {
		s := math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
		out[i] = wave.StereoSample{L: s, R: s}
	}
	return out
}

// nominalCursor mirrors the per-frame cursor rule of ComputeTable.
func nominalCursor(k, windowSize int, cfg Config) int {
	return 2*windowSize + int(cfg.SampleRate*(float64(k)/cfg.FPS))
}

// A pure 440 Hz tone must stay phase locked: every chosen window edge sits
// on a positive-going zero crossing, so successive edges differ by whole
// periods of 48000/440 samples (up to crossing quantization).
func TestSineStaysPhaseLocked(t *testing.T) {
	cfg := Config{
		WindowSize:   4096,
		SearchRadius: 800,
		FPS:          60,
		SampleRate:   48000,
		Metric:       MetricTimeDomain,
	}
	buf := wave.NewSampleBuffer(sineStereo(440, 1.0, 48000), cfg.WindowSize)
	table := ComputeTable(buf, cfg)
	require.Greater(t, len(table), 60)

	period := 48000.0 / 440.0
	signalEnd := 2*cfg.WindowSize + 48000
	for k := 1; k <= 60; k++ {
		if nominalCursor(k, cfg.WindowSize, cfg) > signalEnd {
			break
		}
		diff := float64(table[k] - table[k-1])
		periods := math.Round(diff / period)
		assert.InDelta(t, periods*period, diff, 2.0,
			"frame %d advanced %v samples, not a whole number of periods", k, diff)
	}
}

// With no zero crossing anywhere, every frame falls back to the nominal
// cursor plus half a window, clamped to the valid range.
func TestDCSignalFallsBackToCursor(t *testing.T) {
	cfg := Config{
		WindowSize:   4096,
		SearchRadius: 800,
		FPS:          60,
		SampleRate:   48000,
		Metric:       MetricTimeDomain,
	}
	buf := wave.NewSampleBuffer(make([]wave.StereoSample, 2*48000), cfg.WindowSize)
	table := ComputeTable(buf, cfg)

	for k := 0; k < len(table)-1; k++ {
		want := nominalCursor(k, cfg.WindowSize, cfg) + cfg.WindowSize/2
		if want > buf.Len() {
			want = buf.Len()
		}
		assert.Equal(t, want, table[k], "frame %d", k)
	}
	assert.Equal(t, buf.Len(), table[len(table)-1])
}

// A channel too short for even one frame step emits its terminal pad as
// the second entry.
func TestShortChannelTerminatesImmediately(t *testing.T) {
	cfg := Config{
		WindowSize:   64,
		SearchRadius: 64,
		FPS:          60,
		SampleRate:   48000,
		Metric:       MetricTimeDomain,
	}
	buf := wave.NewSampleBuffer(make([]wave.StereoSample, 100), cfg.WindowSize)
	table := ComputeTable(buf, cfg)

	require.Len(t, table, 2)
	assert.Equal(t, buf.Len(), table[1])
}

func TestTableLengthMatchesFrameSchedule(t *testing.T) {
	cfg := Config{
		WindowSize:   4096,
		SearchRadius: 800,
		FPS:          60,
		SampleRate:   48000,
		Metric:       MetricTimeDomain,
	}
	buf := wave.NewSampleBuffer(make([]wave.StereoSample, 48000), cfg.WindowSize)
	table := ComputeTable(buf, cfg)

	// one entry per scheduled frame plus the terminator
	scheduled := 0
	for k := 0; nominalCursor(k, cfg.WindowSize, cfg) <= buf.Len(); k++ {
		scheduled++
	}
	assert.Equal(t, scheduled+1, len(table))

	// and within one frame of the closed form
	closed := int(float64(buf.Len()-2*cfg.WindowSize)*cfg.FPS/cfg.SampleRate) + 1
	assert.InDelta(t, closed, len(table), 1)
}

func TestTableInvariantsAndIdempotence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := Config{
			WindowSize:   64,
			SearchRadius: rapid.IntRange(8, 64).Draw(t, "radius"),
			FPS:          50,
			SampleRate:   8000,
			Metric:       rapid.SampledFrom([]Metric{MetricTimeDomain, MetricSpectral}).Draw(t, "metric"),
		}
		n := rapid.IntRange(0, 2000).Draw(t, "n")
		vals := rapid.SliceOfN(rapid.Float64Range(-1, 1), n, n).Draw(t, "samples")
		stereo := make([]wave.StereoSample, n)
		for i := range stereo {
			stereo[i] = wave.StereoSample{L: vals[i], R: vals[i]}
		}
		buf := wave.NewSampleBuffer(stereo, cfg.WindowSize)

		table := ComputeTable(buf, cfg)
		require.NotEmpty(t, table)

		for k, idx := range table {
			assert.GreaterOrEqual(t, idx, 2*cfg.WindowSize, "frame %d", k)
			assert.LessOrEqual(t, idx, buf.Len(), "frame %d", k)
		}
		assert.Equal(t, buf.Len(), table[len(table)-1])

		again := ComputeTable(buf, cfg)
		assert.Equal(t, table, again, "same inputs must give a bit-identical table")
	})
}

// The spectral metric must also track crossings of a periodic signal.
func TestSpectralMetricLocksToPeriod(t *testing.T) {
	cfg := Config{
		WindowSize:   512,
		SearchRadius: 100,
		FPS:          30,
		SampleRate:   8000,
		Metric:       MetricSpectral,
	}
	buf := wave.NewSampleBuffer(sineStereo(440, 0.5, 8000), cfg.WindowSize)
	table := ComputeTable(buf, cfg)

	period := 8000.0 / 440.0
	signalEnd := 2*cfg.WindowSize + 4000
	checked := 0
	for k := 1; k < len(table)-1; k++ {
		if nominalCursor(k, cfg.WindowSize, cfg) > signalEnd {
			break
		}
		diff := float64(table[k] - table[k-1])
		periods := math.Round(diff / period)
		assert.InDelta(t, periods*period, diff, 2.0, "frame %d", k)
		checked++
	}
	assert.Greater(t, checked, 5)
}

func TestConfigValidate(t *testing.T) {
	good := Config{WindowSize: 4096, SearchRadius: 800, FPS: 60, SampleRate: 48000}
	assert.NoError(t, good.Validate())

	bad := good
	bad.SearchRadius = good.WindowSize + 1
	assert.Error(t, bad.Validate(), "radius wider than the window would read before the buffer start")

	bad = good
	bad.SampleRate = 0.5
	assert.Error(t, bad.Validate())

	bad = good
	bad.FPS = 0
	assert.Error(t, bad.Validate())

	bad = good
	bad.WindowSize = 0
	assert.Error(t, bad.Validate())
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("time")
	require.NoError(t, err)
	assert.Equal(t, MetricTimeDomain, m)

	m, err = ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, MetricTimeDomain, m)

	m, err = ParseMetric("spectral")
	require.NoError(t, err)
	assert.Equal(t, MetricSpectral, m)

	_, err = ParseMetric("wavelet")
	assert.Error(t, err)
}
