package backend

import (
	"log/slog"

	"github.com/valerio/go-gfs/gfs/bmr"
	"github.com/valerio/go-gfs/gfs/input/action"
	"github.com/valerio/go-gfs/gfs/input/event"
	"github.com/valerio/go-gfs/gfs/video"
)

// Backend represents a complete host platform (presentation + input).
// Backends are responsible for:
// - Providing the Surface finished frames are presented to
// - Translating platform-specific input and window events to InputEvents
// - Handling backend-specific features (log panels, periodic snapshots)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Surface or Update.
	Init(config BackendConfig) error

	// Surface returns the presentation target for the next frame.
	Surface() bmr.Surface

	// Update is called once per frame after the frame was presented.
	// Backends should:
	// 1. Poll for platform-specific events (keyboard, window events, etc.)
	// 2. Translate events to InputEvents and return them
	// 3. Finish the frame on their output (flush, draw panels)
	// frame is the backbuffer, nil when the renderer has none.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title  string
	Width  int // initial client area width
	Height int // initial client area height
	// LogLevel is the shared level the host adjusts at runtime. Backends
	// that capture logs filter with it. May be nil.
	LogLevel *slog.LevelVar
}

// InputEvent is a platform event translated to an action
type InputEvent struct {
	Action action.Action
	Type   event.Type
	// New client area size, set for action.WindowResize
	Width  int
	Height int
}

// Press creates a press event for act
func Press(act action.Action) InputEvent {
	return InputEvent{Action: act, Type: event.Press}
}

// Release creates a release event for act
func Release(act action.Action) InputEvent {
	return InputEvent{Action: act, Type: event.Release}
}

// Quit asks the host to stop
func Quit() InputEvent {
	return Press(action.HostQuit)
}

// Resized reports a new client area size
func Resized(width, height int) InputEvent {
	return InputEvent{Action: action.WindowResize, Type: event.Press, Width: width, Height: height}
}

// Exposed asks the host to present the last frame again
func Exposed() InputEvent {
	return Press(action.WindowExpose)
}
