package playback

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"

	"github.com/richinsley/goscope/wave"
)

const framesPerBuffer = 1024

// StartSignal is the one-shot reply the audio service sends once output has
// actually started.
type StartSignal struct {
	Start      time.Time
	Controller *Controller
}

// Player feeds the master mix to the default output device and mirrors it
// to a WAV file. The playhead lives on the audio callback thread; the rest
// of the process only talks to it through the controller cells.
type Player struct {
	samples    []wave.StereoSample
	sampleRate float64
	ctrl       *Controller
	stream     *portaudio.Stream

	// callback-thread state
	playhead int
	seekGen  uint64
}

// PlayAndSave writes the master mix to outPath, opens the default output
// device, starts streaming, and sends the stream's start instant and
// controller on reply. The returned player keeps the stream alive until
// Stop is called; errors before the stream starts are startup-fatal for
// the caller.
func PlayAndSave(master []wave.StereoSample, sampleRate float64, outPath string, reply chan<- StartSignal) (*Player, error) {
	if err := writeWAV(outPath, master, int(sampleRate)); err != nil {
		return nil, fmt.Errorf("saving master mix: %w", err)
	}
	log.Info("wrote master mix", "path", outPath, "seconds", float64(len(master))/sampleRate)

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}

	p := &Player{
		samples:    master,
		sampleRate: sampleRate,
		ctrl:       NewController(),
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, framesPerBuffer, p.render)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("opening output stream: %w", err)
	}
	p.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("starting output stream: %w", err)
	}

	reply <- StartSignal{Start: time.Now(), Controller: p.ctrl}
	return p, nil
}

// render runs on the portaudio callback thread. It applies pending seeks,
// holds position while the rate cell is non-positive, and emits silence
// past the end of the mix.
func (p *Player) render(out [][]float32) {
	left, right := out[0], out[1]

	if seconds, gen := p.ctrl.Seek(); gen != p.seekGen {
		p.seekGen = gen
		p.playhead = int(seconds * p.sampleRate)
		if p.playhead < 0 {
			p.playhead = 0
		}
	}

	rate := p.ctrl.Rate()
	gain := float32(p.ctrl.Volume())

	for i := range left {
		if rate <= 0 || p.playhead >= len(p.samples) {
			left[i], right[i] = 0, 0
			continue
		}
		s := p.samples[p.playhead]
		left[i] = float32(s.L) * gain
		right[i] = float32(s.R) * gain
		p.playhead++
	}
}

// Stop tears the stream down. Safe to call once at shutdown.
func (p *Player) Stop() error {
	if p.stream == nil {
		return nil
	}
	if err := p.stream.Close(); err != nil {
		portaudio.Terminate()
		return err
	}
	p.stream = nil
	return portaudio.Terminate()
}
