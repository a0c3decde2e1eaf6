package renderer

import (
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/goscope/glfwcontext"
	"github.com/richinsley/goscope/options"
	"github.com/richinsley/goscope/playback"
	"github.com/richinsley/goscope/scope"
	"github.com/richinsley/goscope/stabilizer"
	"github.com/richinsley/goscope/wave"
)

type appState int

const (
	stateLoading appState = iota
	stateReady
	statePlaying
)

const (
	nameLabelSize    = 20
	loadingLabelSize = 40
	fpsLabelSize     = 16
	fpsPadding       = 4
)

// App wires the whole visualizer together: window, scene, clock,
// dispatcher, and the loading-to-playing handoff. Everything except the
// precompute pool and the audio callback runs on the UI thread.
type App struct {
	ctx        *glfwcontext.Context
	rend       *Renderer
	scene      *Scene
	clock      *playback.Clock
	render     *wave.RenderedAudio
	opts       *options.Resolved
	channels   []*scope.Channel
	dispatcher *scope.Dispatcher

	// commands carries the single precompute-completion closure back to
	// the UI thread; drained with a non-blocking receive each frame.
	commands chan func()
	state    appState
	player   atomic.Pointer[playback.Player]

	traceColor   [4]float32
	dividerColor [4]float32

	loadingLabel *Label
	traces       []*Polyline
	nameLabels   []*Label
	dividers     []*Quad

	fps        fpsCounter
	fpsVisible bool
	fpsPanel   *Quad
	fpsLabel   *Label
}

// NewApp opens the window and prepares the loading scene. The sample
// buffers are built here; the index tables arrive later from the
// precompute pool.
func NewApp(render *wave.RenderedAudio, sampleRate float64, opts *options.Resolved) (*App, error) {
	ctx, err := glfwcontext.New(opts.Width, opts.Height, "Oscilloscope")
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	clearColor, err := ParseHexColor(opts.ClearColor)
	if err != nil {
		return nil, err
	}
	traceColor, err := ParseHexColor(opts.TraceColor)
	if err != nil {
		return nil, err
	}
	dividerColor, err := ParseHexColor(opts.DividerColor)
	if err != nil {
		return nil, err
	}

	rend, err := New(clearColor)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	clock := playback.NewClock(sampleRate)
	channels := scope.Layout(render, opts.WindowSize, opts.FPS)

	a := &App{
		ctx:          ctx,
		rend:         rend,
		scene:        NewScene(),
		clock:        clock,
		render:       render,
		opts:         opts,
		channels:     channels,
		dispatcher:   scope.NewDispatcher(clock, channels),
		commands:     make(chan func(), 1),
		state:        stateLoading,
		traceColor:   traceColor,
		dividerColor: dividerColor,
		fpsVisible:   true,
	}

	a.loadingLabel = a.scene.AddLabel(&Label{
		Text:  "Loading...",
		Size:  loadingLabelSize,
		Color: [4]float32{1, 1, 1, 1},
	})

	a.fpsPanel = a.scene.AddQuad(&Quad{Color: [4]float32{0, 0, 0, 0.5}})
	a.fpsLabel = a.scene.AddLabel(&Label{Size: fpsLabelSize, Color: [4]float32{1, 1, 1, 1}})

	ctx.Window().SetKeyCallback(a.onKey)
	return a, nil
}

// Run starts precomputation in the background and drives the UI loop until
// the window closes.
func (a *App) Run() {
	defer a.shutdown()

	go a.precompute()

	last := a.ctx.Time()
	for !a.ctx.ShouldClose() {
		now := a.ctx.Time()
		a.fps.update(now - last)
		last = now

		select {
		case cmd := <-a.commands:
			cmd()
		default:
		}

		width, height := a.ctx.GetFramebufferSize()
		a.layoutUI(width, height)

		if a.state == statePlaying {
			a.dispatcher.Dispatch(float32(width), float32(height), func(c *scope.Channel, path []scope.Vec2) {
				a.traces[c.Index].Points = path
			})
		}

		a.rend.Draw(a.scene, width, height)
		a.ctx.EndFrame()
	}
}

// precompute runs on a background goroutine and posts its single
// completion command back to the UI thread.
func (a *App) precompute() {
	metric, err := stabilizer.ParseMetric(a.opts.Metric)
	if err != nil {
		log.Fatal("bad stabilizer metric", "err", err)
	}
	cfg := stabilizer.Config{
		WindowSize:   a.opts.WindowSize,
		SearchRadius: a.opts.SearchRadius,
		FPS:          a.opts.FPS,
		SampleRate:   a.clock.SampleRate(),
		Metric:       metric,
	}

	bufs := make([]*wave.SampleBuffer, len(a.channels))
	names := make([]string, len(a.channels))
	for i, c := range a.channels {
		bufs[i] = c.Buf
		names[i] = c.Name
	}

	tables, err := stabilizer.Precompute(bufs, names, cfg)
	if err != nil {
		log.Fatal("precompute failed", "err", err)
	}

	a.commands <- func() {
		a.installChannels(tables)
	}
}

// installChannels runs on the UI thread once precomputation is done: it
// attaches the tables, spawns the channel entities, despawns the loading
// label, and starts playback.
func (a *App) installChannels(tables []stabilizer.IndexTable) {
	a.traces = make([]*Polyline, len(a.channels))
	a.nameLabels = make([]*Label, len(a.channels))
	for i, c := range a.channels {
		c.Table = tables[i]
		a.traces[i] = a.scene.AddPolyline(&Polyline{Color: a.traceColor})
		a.nameLabels[i] = a.scene.AddLabel(&Label{
			Text:  c.Name,
			Size:  nameLabelSize,
			Color: [4]float32{1, 1, 1, 1},
		})
		if c.Index != 0 {
			a.dividers = append(a.dividers, a.scene.AddQuad(&Quad{Color: a.dividerColor}))
		}
	}

	a.scene.RemoveLabel(a.loadingLabel)
	a.loadingLabel = nil
	a.state = stateReady

	a.startPlayback()
	a.state = statePlaying
}

// startPlayback launches the audio service and performs the one blocking
// rendezvous for its start instant.
func (a *App) startPlayback() {
	reply := make(chan playback.StartSignal, 1)
	go func() {
		player, err := playback.PlayAndSave(a.render.Master, a.clock.SampleRate(), a.opts.Output, reply)
		if err != nil {
			log.Fatal("audio output failed", "err", err)
		}
		a.player.Store(player)
	}()

	signal := <-reply
	a.clock.Bind(signal.Start, signal.Controller)
	log.Info("playback started", "start", signal.Start)
}

func (a *App) onKey(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeySpace:
		a.clock.TogglePause()
	case glfw.KeyR:
		a.clock.Seek(0)
	case glfw.KeyUp:
		a.clock.MulVolume(1.5)
	case glfw.KeyDown:
		a.clock.MulVolume(1.0 / 1.5)
	case glfw.KeyEscape:
		w.SetShouldClose(true)
	case glfw.KeyF12:
		a.fpsVisible = !a.fpsVisible
	}
}

// layoutUI repositions the overlay nodes for the current framebuffer size.
// Scene coordinates are centered pixels with y up.
func (a *App) layoutUI(width, height int) {
	w, h := float32(width), float32(height)

	if a.loadingLabel != nil {
		lw, lh := a.loadingLabel.Measure()
		a.loadingLabel.X = -lw / 2
		a.loadingLabel.Y = lh / 2
	}

	if len(a.channels) > 0 {
		spacing := 1.0 / float32(len(a.channels))
		divider := 0
		for i, c := range a.channels {
			if a.nameLabels != nil && a.nameLabels[i] != nil {
				topFrac := float32(c.Index)*spacing + 0.013
				a.nameLabels[i].X = 10 - w/2
				a.nameLabels[i].Y = h/2 - topFrac*h
			}
			if c.Index != 0 && divider < len(a.dividers) {
				top := h/2 - float32(c.Index)*spacing*h
				a.dividers[divider].Min = scope.Vec2{X: -w / 2, Y: top - 2}
				a.dividers[divider].Max = scope.Vec2{X: w / 2, Y: top}
				divider++
			}
		}
	}

	value, ok := a.fps.value()
	a.fpsLabel.Text = fpsText(value, ok)
	a.fpsLabel.Color = fpsColor(value, ok)
	lw, lh := a.fpsLabel.Measure()
	marginX, marginY := 0.01*w, 0.01*h
	a.fpsPanel.Max = scope.Vec2{X: w/2 - marginX, Y: h/2 - marginY}
	a.fpsPanel.Min = scope.Vec2{
		X: a.fpsPanel.Max.X - lw - 2*fpsPadding,
		Y: a.fpsPanel.Max.Y - lh - 2*fpsPadding,
	}
	a.fpsLabel.X = a.fpsPanel.Min.X + fpsPadding
	a.fpsLabel.Y = a.fpsPanel.Max.Y - fpsPadding
	a.fpsPanel.Hidden = !a.fpsVisible
	a.fpsLabel.Hidden = !a.fpsVisible
}

func (a *App) shutdown() {
	if player := a.player.Load(); player != nil {
		if err := player.Stop(); err != nil {
			log.Error("stopping audio", "err", err)
		}
	}
	a.ctx.Shutdown()
}
