package stabilizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/goscope/wave"
)

func TestPrecomputeMatchesSequential(t *testing.T) {
	cfg := Config{
		WindowSize:   64,
		SearchRadius: 64,
		FPS:          50,
		SampleRate:   8000,
		Metric:       MetricTimeDomain,
	}

	makeChannel := func(freq float64) []wave.StereoSample {
		out := make([]wave.StereoSample, 1600)
		for i := range out {
			s := math.Sin(2 * math.Pi * freq * float64(i) / 8000)
			out[i] = wave.StereoSample{L: s, R: s}
		}
		return out
	}

	bufs := []*wave.SampleBuffer{
		wave.NewSampleBuffer(makeChannel(220), cfg.WindowSize),
		wave.NewSampleBuffer(makeChannel(440), cfg.WindowSize),
		wave.NewSampleBuffer(makeChannel(880), cfg.WindowSize),
		wave.NewSampleBuffer(make([]wave.StereoSample, 1600), cfg.WindowSize),
	}
	names := []string{"A", "B", "C", "DC"}

	tables, err := Precompute(bufs, names, cfg)
	require.NoError(t, err)
	require.Len(t, tables, len(bufs))

	// parallel scheduling must not change results or their order
	for i, buf := range bufs {
		assert.Equal(t, ComputeTable(buf, cfg), tables[i], "channel %s", names[i])
	}
}

func TestPrecomputeRejectsBadConfig(t *testing.T) {
	cfg := Config{WindowSize: 64, SearchRadius: 128, FPS: 50, SampleRate: 8000}
	_, err := Precompute(nil, nil, cfg)
	assert.Error(t, err)
}
