// Package options carries the command-line and tuning-file surface of the
// visualizer.
package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options holds the raw flag bindings. Fields are pointers so main can
// hand them straight to pflag.
type Options struct {
	Session      *string
	Demo         *bool
	DemoSeconds  *float64
	Output       *string
	Tuning       *string
	WindowSize   *int
	SearchRadius *int
	FPS          *float64
	Metric       *string
	Width        *int
	Height       *int
	Help         *bool
}

// TuningFile is the optional YAML overlay for the stabilizer and display
// tuning. Zero values leave the flag (or default) untouched.
type TuningFile struct {
	WindowSize   int     `yaml:"window_size"`
	SearchRadius int     `yaml:"search_radius"`
	FPS          float64 `yaml:"fps"`
	Metric       string  `yaml:"metric"`
	Output       string  `yaml:"output"`
	TraceColor   string  `yaml:"trace_color"`
	DividerColor string  `yaml:"divider_color"`
	ClearColor   string  `yaml:"clear_color"`
}

// Resolved is the effective configuration after applying the tuning file
// over the flags.
type Resolved struct {
	WindowSize   int
	SearchRadius int
	FPS          float64
	Metric       string
	Output       string
	Width        int
	Height       int
	TraceColor   string
	DividerColor string
	ClearColor   string
}

// Resolve merges flags with the tuning file, if one was given.
func (o *Options) Resolve() (*Resolved, error) {
	r := &Resolved{
		WindowSize:   *o.WindowSize,
		SearchRadius: *o.SearchRadius,
		FPS:          *o.FPS,
		Metric:       *o.Metric,
		Output:       *o.Output,
		Width:        *o.Width,
		Height:       *o.Height,
		TraceColor:   "#6cb8ff",
		DividerColor: "#444d56",
		ClearColor:   "#24292e",
	}
	if *o.Tuning == "" {
		return r, nil
	}

	raw, err := os.ReadFile(*o.Tuning)
	if err != nil {
		return nil, fmt.Errorf("reading tuning file: %w", err)
	}
	var t TuningFile
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parsing tuning file: %w", err)
	}

	if t.WindowSize != 0 {
		r.WindowSize = t.WindowSize
	}
	if t.SearchRadius != 0 {
		r.SearchRadius = t.SearchRadius
	}
	if t.FPS != 0 {
		r.FPS = t.FPS
	}
	if t.Metric != "" {
		r.Metric = t.Metric
	}
	if t.Output != "" {
		r.Output = t.Output
	}
	if t.TraceColor != "" {
		r.TraceColor = t.TraceColor
	}
	if t.DividerColor != "" {
		r.DividerColor = t.DividerColor
	}
	if t.ClearColor != "" {
		r.ClearColor = t.ClearColor
	}
	return r, nil
}
