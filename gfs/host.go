// Package gfs runs the demo: it owns the renderer, the input manager and
// a backend, and drives them once per frame.
package gfs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-gfs/gfs/audio"
	"github.com/valerio/go-gfs/gfs/backend"
	"github.com/valerio/go-gfs/gfs/bmr"
	"github.com/valerio/go-gfs/gfs/debug"
	"github.com/valerio/go-gfs/gfs/display"
	"github.com/valerio/go-gfs/gfs/input"
	"github.com/valerio/go-gfs/gfs/input/action"
	"github.com/valerio/go-gfs/gfs/input/event"
	"github.com/valerio/go-gfs/gfs/timing"
	"github.com/valerio/go-gfs/gfs/video"
)

const (
	minLogLevel  = slog.LevelDebug
	maxLogLevel  = slog.LevelError
	logLevelStep = slog.LevelInfo - slog.LevelDebug
)

// Options configures a Host
type Options struct {
	Backend backend.Backend
	// Limiter paces Run. Defaults to no limiting.
	Limiter  timing.Limiter
	Renderer bmr.Config
	Title    string
	// Width and Height size the window and the initial backbuffer.
	// Default 900x600.
	Width  int
	Height int
	// ClearColor fills the backbuffer on Clear. Nil means white.
	ClearColor *video.Color
	// SnapshotDir receives on-demand snapshots; empty means the working
	// directory.
	SnapshotDir string
	// Audio is started by Run and toggled by the audio action. May be nil.
	Audio *audio.Player
	// LogLevel is adjusted by the debug log level actions. May be nil.
	LogLevel *slog.LevelVar
}

// Host wires a Demo, a Renderer and a Backend together
type Host struct {
	opts     Options
	backend  backend.Backend
	limiter  timing.Limiter
	renderer *bmr.Renderer
	input    *input.Manager
	demo     *Demo
	running  bool
}

// NewHost initializes the backend and the renderer and allocates the
// initial backbuffer. A failed backbuffer allocation is logged, not
// returned: the host runs without presenting until a resize succeeds.
func NewHost(opts Options) (*Host, error) {
	if opts.Backend == nil {
		return nil, errors.New("no backend configured")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = display.DefaultWindowWidth, display.DefaultWindowHeight
	}
	if opts.Title == "" {
		opts.Title = display.DefaultTitle
	}
	clearColor := video.White
	if opts.ClearColor != nil {
		clearColor = *opts.ClearColor
	}
	if opts.Limiter == nil {
		opts.Limiter = timing.NewNoOpLimiter()
	}

	// The backend goes first so it can install its log handler before
	// the renderer picks up the default logger.
	err := opts.Backend.Init(backend.BackendConfig{
		Title:    opts.Title,
		Width:    opts.Width,
		Height:   opts.Height,
		LogLevel: opts.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend: %w", err)
	}

	renderer, err := bmr.InitWithConfig(clearColor, opts.Renderer)
	if err != nil {
		opts.Backend.Cleanup()
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}
	if err := renderer.Resize(opts.Width, opts.Height); err != nil {
		slog.Warn("Backbuffer allocation failed", "width", opts.Width, "height", opts.Height, "error", err)
	}

	pad := &input.DPad{}
	h := &Host{
		opts:     opts,
		backend:  opts.Backend,
		limiter:  opts.Limiter,
		renderer: renderer,
		input:    input.NewManager(pad),
		demo:     NewDemo(pad),
		running:  true,
	}
	h.registerActions()
	return h, nil
}

func (h *Host) registerActions() {
	h.input.On(action.HostQuit, event.Press, func() {
		slog.Info("Quit requested")
		h.running = false
	})
	h.input.On(action.HostSnapshot, event.Press, func() {
		debug.TakeSnapshot(h.renderer.Frame(), h.opts.SnapshotDir)
	})
	h.input.On(action.HostAudioToggle, event.Press, func() {
		if h.opts.Audio == nil {
			slog.Info("Audio output not available")
			return
		}
		slog.Info("Audio toggled", "playing", h.opts.Audio.Toggle())
	})
	h.input.On(action.DebugLogLevelIncrease, event.Press, func() {
		h.adjustLogLevel(-logLevelStep)
	})
	h.input.On(action.DebugLogLevelDecrease, event.Press, func() {
		h.adjustLogLevel(logLevelStep)
	})
}

// adjustLogLevel moves the shared level by delta, staying within
// Debug..Error. A lower level means more logs.
func (h *Host) adjustLogLevel(delta slog.Level) {
	if h.opts.LogLevel == nil {
		return
	}
	level := h.opts.LogLevel.Level() + delta
	level = max(minLogLevel, min(maxLogLevel, level))
	h.opts.LogLevel.Set(level)
	slog.Info("Log level changed", "level", level)
}

// Step runs one frame: record, composite and present, then poll the
// backend and dispatch its events. It reports whether the host should keep
// running.
func (h *Host) Step() (bool, error) {
	h.renderer.BeginFrame(h.backend.Surface())
	if err := h.demo.Frame(h.renderer); err != nil {
		slog.Warn("Draw commands dropped", "error", err)
	}
	if err := h.renderer.EndFrame(); err != nil {
		slog.Warn("Frame not presented", "error", err)
	}

	events, err := h.backend.Update(h.renderer.Frame())
	if err != nil {
		return false, fmt.Errorf("backend update failed: %w", err)
	}
	for _, evt := range events {
		h.dispatch(evt)
	}
	return h.running, nil
}

func (h *Host) dispatch(evt backend.InputEvent) {
	switch evt.Action {
	case action.WindowResize:
		slog.Debug("Window resized", "width", evt.Width, "height", evt.Height)
		if err := h.renderer.Resize(evt.Width, evt.Height); err != nil {
			slog.Warn("Backbuffer allocation failed", "width", evt.Width, "height", evt.Height, "error", err)
		}
	case action.WindowExpose:
		if err := h.renderer.Repaint(h.backend.Surface()); err != nil {
			slog.Warn("Repaint failed", "error", err)
		}
	default:
		h.input.Trigger(evt.Action, evt.Type)
	}
}

// Run steps frames until a quit is requested, the backend fails or ctx is
// done.
func (h *Host) Run(ctx context.Context) error {
	if h.opts.Audio != nil {
		h.opts.Audio.Start()
	}
	h.limiter.Reset()

	for h.running {
		select {
		case <-ctx.Done():
			slog.Info("Interrupted", "frames", h.renderer.FrameCount())
			return nil
		default:
		}

		if _, err := h.Step(); err != nil {
			return err
		}
		h.limiter.WaitForNextFrame()
	}
	slog.Info("Stopped", "frames", h.renderer.FrameCount())
	return nil
}

// Close releases the renderer, the audio player and the backend
func (h *Host) Close() error {
	h.renderer.DeInit()
	var errs []error
	if h.opts.Audio != nil {
		errs = append(errs, h.opts.Audio.Close())
	}
	errs = append(errs, h.backend.Cleanup())
	return errors.Join(errs...)
}

// Renderer returns the host's renderer
func (h *Host) Renderer() *bmr.Renderer { return h.renderer }

// Demo returns the demo the host draws
func (h *Host) Demo() *Demo { return h.demo }

// Input returns the input manager
func (h *Host) Input() *input.Manager { return h.input }
