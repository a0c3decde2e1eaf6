package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/goscope/playback"
	"github.com/richinsley/goscope/stabilizer"
	"github.com/richinsley/goscope/wave"
)

func testChannel(t *testing.T, n int) *Channel {
	t.Helper()
	stereo := make([]wave.StereoSample, n)
	for i := range stereo {
		stereo[i] = wave.StereoSample{L: float64(i % 7), R: float64(i % 7)}
	}
	buf := wave.NewSampleBuffer(stereo, 32)
	cfg := stabilizer.Config{
		WindowSize:   32,
		SearchRadius: 16,
		FPS:          50,
		SampleRate:   8000,
		Metric:       stabilizer.MetricTimeDomain,
	}
	return &Channel{
		Name:       "test",
		Rect:       Rect{MinX: -0.5, MinY: -0.5, MaxX: 0.5, MaxY: 0.5},
		Buf:        buf,
		Table:      stabilizer.ComputeTable(buf, cfg),
		WindowSize: 32,
		FPS:        50,
	}
}

func TestChannelWindowAt(t *testing.T) {
	c := testChannel(t, 1000)

	for frame := 0; frame < len(c.Table); frame++ {
		assert.Len(t, c.WindowAt(frame), c.WindowSize, "frame %d", frame)
	}

	// frames past the table show the terminal zero pad
	tail := c.WindowAt(len(c.Table) + 500)
	require.Len(t, tail, c.WindowSize)
	for _, s := range tail {
		assert.Zero(t, s)
	}

	assert.Equal(t, c.WindowAt(len(c.Table)-1), tail)
	assert.Len(t, c.WindowAt(-3), c.WindowSize)
}

func TestChannelWindowAtEmptyTable(t *testing.T) {
	c := &Channel{WindowSize: 32}
	assert.Nil(t, c.WindowAt(0))
}

func TestLayout(t *testing.T) {
	render := &wave.RenderedAudio{
		Master: make([]wave.StereoSample, 500),
		Channels: [][]wave.StereoSample{
			make([]wave.StereoSample, 500),
			make([]wave.StereoSample, 500),
			make([]wave.StereoSample, 500),
		},
		Names: []string{"Violin", "Cello", "Piano"},
	}

	channels := Layout(render, 32, 60)
	require.Len(t, channels, 4, "three mix channels plus the synthetic master")

	assert.Equal(t, "Violin", channels[0].Name)
	assert.Equal(t, 0, channels[0].Index)
	master := channels[3]
	assert.Equal(t, "Master", master.Name)
	assert.Equal(t, 3, master.Index, "master index equals the mix channel count")

	// the first channel owns the top strip, master the bottom one
	assert.InDelta(t, 0.5, channels[0].Rect.MaxY, 1e-6)
	assert.InDelta(t, -0.5, master.Rect.MinY, 1e-6)

	// strips tile the viewport without overlap
	for i := 0; i < len(channels)-1; i++ {
		var below *Channel
		if i+1 < 3 {
			below = channels[i+1]
		} else {
			below = master
		}
		assert.InDelta(t, float64(channels[i].Rect.MinY), float64(below.Rect.MaxY), 1e-6,
			"strip %d must sit on top of strip %d", i, i+1)
	}
	for _, c := range channels {
		assert.Equal(t, float32(-0.5), c.Rect.MinX)
		assert.Equal(t, float32(0.5), c.Rect.MaxX)
		assert.NotNil(t, c.Buf)
		assert.Empty(t, c.Table, "tables attach after precompute")
	}
}

func TestDispatcherVisitsEveryChannel(t *testing.T) {
	channels := []*Channel{testChannel(t, 1000), testChannel(t, 2000)}
	clock := playback.NewClock(8000)
	d := NewDispatcher(clock, channels)

	seen := 0
	d.Dispatch(800, 600, func(c *Channel, path []Vec2) {
		seen++
		assert.NotEmpty(t, path)
	})
	assert.Equal(t, len(channels), seen)

	// dispatch is idempotent with respect to the clock
	var first, second [][]Vec2
	d.Dispatch(800, 600, func(c *Channel, path []Vec2) { first = append(first, path) })
	d.Dispatch(800, 600, func(c *Channel, path []Vec2) { second = append(second, path) })
	assert.Equal(t, first, second)
}
