package main

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/richinsley/goscope/options"
	"github.com/richinsley/goscope/renderer"
	"github.com/richinsley/goscope/stabilizer"
	"github.com/richinsley/goscope/wave"
)

const demoSampleRate = 48000.0

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.Options{}
	opts.Session = flag.String("session", "", "YAML session manifest of WAV stems")
	opts.Demo = flag.Bool("demo", false, "Synthesize a built-in demo program instead of loading a session")
	opts.DemoSeconds = flag.Float64("demo-seconds", 20.0, "Length of the demo program in seconds")
	opts.Output = flag.String("output", "./output/output.wav", "Output WAV path for the master mix")
	opts.Tuning = flag.String("tuning", "", "Optional YAML tuning overlay")
	opts.WindowSize = flag.Int("window", stabilizer.DefaultWindowSize, "Samples displayed per frame per channel")
	opts.SearchRadius = flag.Int("radius", stabilizer.DefaultSearchRadius, "Zero-crossing search radius in samples")
	opts.FPS = flag.Float64("fps", stabilizer.DefaultFPS, "Target video frame rate for the index tables")
	opts.Metric = flag.String("metric", "time", "Stabilizer metric: time or spectral")
	opts.Width = flag.Int("width", 1280, "Initial window width")
	opts.Height = flag.Int("height", 720, "Initial window height")
	opts.Help = flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *opts.Help {
		fmt.Println("Oscilloscope visualizer for multi-channel audio playback")
		flag.PrintDefaults()
		return
	}

	resolved, err := opts.Resolve()
	if err != nil {
		log.Fatal("bad configuration", "err", err)
	}

	var render *wave.RenderedAudio
	var sampleRate float64
	switch {
	case *opts.Demo:
		log.Info("synthesizing demo program", "seconds", *opts.DemoSeconds)
		render = wave.Demo(demoSampleRate, *opts.DemoSeconds)
		sampleRate = demoSampleRate
	case *opts.Session != "":
		render, sampleRate, err = wave.LoadSession(*opts.Session)
		if err != nil {
			log.Fatal("loading session", "err", err)
		}
		log.Info("loaded session", "channels", len(render.Channels),
			"seconds", render.Duration(sampleRate))
	default:
		log.Fatal("nothing to play: pass --session or --demo")
	}

	if err := render.Validate(resolved.WindowSize); err != nil {
		log.Fatal("rendered audio rejected", "err", err)
	}

	app, err := renderer.NewApp(render, sampleRate, resolved)
	if err != nil {
		log.Fatal("starting visualizer", "err", err)
	}
	app.Run()
}
