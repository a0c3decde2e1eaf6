package wave

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/wav"
	"gopkg.in/yaml.v3"
)

// Session describes the stems of one render on disk: a master WAV plus one
// WAV per mix channel. Relative stem paths resolve against the manifest's
// directory.
type Session struct {
	Master   string `yaml:"master"`
	Channels []Stem `yaml:"channels"`
}

// Stem names one channel and points at its audio file.
type Stem struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// LoadSession reads a YAML session manifest and decodes its stems into a
// RenderedAudio. It returns the sample rate of the master stem; every stem
// must share it.
func LoadSession(path string) (*RenderedAudio, float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading session manifest: %w", err)
	}
	var session Session
	if err := yaml.Unmarshal(raw, &session); err != nil {
		return nil, 0, fmt.Errorf("parsing session manifest: %w", err)
	}
	if session.Master == "" {
		return nil, 0, fmt.Errorf("session manifest has no master stem")
	}

	dir := filepath.Dir(path)
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	master, masterRate, err := decodeStem(resolve(session.Master))
	if err != nil {
		return nil, 0, fmt.Errorf("master stem: %w", err)
	}

	render := &RenderedAudio{Master: master}
	for _, stem := range session.Channels {
		samples, rate, err := decodeStem(resolve(stem.File))
		if err != nil {
			return nil, 0, fmt.Errorf("stem %q: %w", stem.Name, err)
		}
		if rate != masterRate {
			return nil, 0, fmt.Errorf("stem %q is %d Hz, master is %d Hz", stem.Name, rate, masterRate)
		}
		render.Channels = append(render.Channels, samples)
		render.Names = append(render.Names, stem.Name)
	}
	return render, float64(masterRate), nil
}

// decodeStem reads a whole WAV file as stereo samples. Mono files are
// duplicated into both channels.
func decodeStem(path string) ([]StereoSample, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%s is not a valid WAV file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}

	scale := 1.0 / float64(int(1)<<(dec.BitDepth-1))
	switch buf.Format.NumChannels {
	case 1:
		out := make([]StereoSample, len(buf.Data))
		for i, v := range buf.Data {
			s := float64(v) * scale
			out[i] = StereoSample{L: s, R: s}
		}
		return out, buf.Format.SampleRate, nil
	case 2:
		out := make([]StereoSample, len(buf.Data)/2)
		for i := range out {
			out[i] = StereoSample{
				L: float64(buf.Data[i*2]) * scale,
				R: float64(buf.Data[i*2+1]) * scale,
			}
		}
		return out, buf.Format.SampleRate, nil
	default:
		return nil, 0, fmt.Errorf("%s has %d channels, want mono or stereo", path, buf.Format.NumChannels)
	}
}
