package scope

import (
	"github.com/richinsley/goscope/wave"
)

// Layout builds the channel descriptors for a render: one stacked viewport
// strip per mix channel from top to bottom, with the synthetic Master
// channel at the bottom. Index tables are attached later, after
// precomputation.
func Layout(render *wave.RenderedAudio, windowSize int, fps float64) []*Channel {
	n := len(render.Channels)
	spacing := 1.0 / float32(n+1)

	channels := make([]*Channel, 0, n+1)
	for i, stereo := range render.Channels {
		minY := float32(n-i)*spacing - 0.5
		maxY := float32(n+1-i)*spacing - 0.5
		channels = append(channels, &Channel{
			Name:       render.Names[i],
			Index:      i,
			Rect:       Rect{MinX: -0.5, MinY: minY, MaxX: 0.5, MaxY: maxY},
			Buf:        wave.NewSampleBuffer(stereo, windowSize),
			WindowSize: windowSize,
			FPS:        fps,
		})
	}

	channels = append(channels, &Channel{
		Name:       "Master",
		Index:      n,
		Rect:       Rect{MinX: -0.5, MinY: -0.5, MaxX: 0.5, MaxY: spacing - 0.5},
		Buf:        wave.NewSampleBuffer(render.Master, windowSize),
		WindowSize: windowSize,
		FPS:        fps,
	})

	return channels
}
