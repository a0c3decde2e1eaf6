package wave

import "math"

// Demo synthesizes a short multi-channel program so the visualizer can run
// without any session on disk: a lead line, a bass line, a sustained chord
// pad, and an arpeggio, mixed down to a master bus.
func Demo(sampleRate float64, seconds float64) *RenderedAudio {
	n := int(sampleRate * seconds)

	lead := make([]StereoSample, n)
	bass := make([]StereoSample, n)
	pad := make([]StereoSample, n)
	arp := make([]StereoSample, n)
	master := make([]StereoSample, n)

	leadNotes := []float64{440, 494, 523, 587}
	arpNotes := []float64{523, 659, 784, 1047}

	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		beat := int(t * 2)

		leadHz := leadNotes[beat%len(leadNotes)]
		l := 0.4 * math.Sin(2*math.Pi*leadHz*t)

		b := 0.5 * math.Sin(2*math.Pi*110*t)
		// soft square-ish bass via a third harmonic
		b += 0.15 * math.Sin(2*math.Pi*330*t)

		p := 0.2 * (math.Sin(2*math.Pi*262*t) + math.Sin(2*math.Pi*330*t) + math.Sin(2*math.Pi*392*t))

		arpHz := arpNotes[int(t*8)%len(arpNotes)]
		a := 0.3 * math.Sin(2*math.Pi*arpHz*t)

		lead[i] = StereoSample{L: l, R: l}
		bass[i] = StereoSample{L: b, R: b}
		pad[i] = StereoSample{L: p, R: p}
		arp[i] = StereoSample{L: a, R: a}

		m := 0.25 * (l + b + p + a)
		master[i] = StereoSample{L: m, R: m}
	}

	return &RenderedAudio{
		Master:   master,
		Channels: [][]StereoSample{lead, bass, pad, arp},
		Names:    []string{"Lead", "Bass", "Pad", "Arp"},
	}
}
