// Package bmr is a bitmap renderer: draw calls are recorded into a command
// buffer during a frame and replayed for every pixel of the backbuffer when
// the frame ends. The finished backbuffer is then stretched onto a Surface.
//
// A Renderer is owned by one goroutine. None of its methods block or lock.
package bmr

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/valerio/go-gfs/gfs/geometry"
	"github.com/valerio/go-gfs/gfs/memory"
	"github.com/valerio/go-gfs/gfs/video"
)

// Config holds renderer settings. The zero value is usable.
type Config struct {
	// CommandCapacity is the command buffer size in bytes. It bounds the
	// commands recorded between two EndFrame calls.
	CommandCapacity int
	// MaxBackbufferBytes caps backbuffer allocations. 0 means
	// DefaultMaxBackbufferBytes, a negative value means no cap.
	MaxBackbufferBytes int
	// RowOrder selects the backbuffer row layout. Bottom-up by default.
	RowOrder video.RowOrder
	// Logger receives renderer diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultMaxBackbufferBytes is the backbuffer allocation cap used when
// Config leaves it unset.
const DefaultMaxBackbufferBytes = 512 * memory.Megabyte

type lifecycle int

const (
	uninitialized lifecycle = iota
	initialized
	deinitialized
)

// Renderer records draw commands and composites them into a backbuffer.
type Renderer struct {
	config     Config
	log        *slog.Logger
	state      lifecycle
	clearColor video.Color
	queue      *CommandBuffer
	frame      *video.FrameBuffer
	surface    Surface
	offset     image.Point
	presenter  presenter
	frames     uint64
}

// Init creates a renderer with the default configuration.
func Init(clearColor video.Color) (*Renderer, error) {
	return InitWithConfig(clearColor, Config{})
}

// InitWithConfig allocates the command buffer and stores the clear colour.
// The renderer has no backbuffer until the first successful Resize.
func InitWithConfig(clearColor video.Color, config Config) (*Renderer, error) {
	if config.CommandCapacity == 0 {
		config.CommandCapacity = DefaultCommandCapacity
	}
	if config.MaxBackbufferBytes == 0 {
		config.MaxBackbufferBytes = DefaultMaxBackbufferBytes
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	queue, err := NewCommandBuffer(config.CommandCapacity)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		config:     config,
		log:        logger,
		state:      initialized,
		clearColor: clearColor,
		queue:      queue,
	}
	r.log.Debug("Renderer initialized",
		"clear_color", clearColor,
		"command_capacity", queue.Capacity(),
		"row_order", config.RowOrder)
	return r, nil
}

// Resize drops the current backbuffer and allocates a zeroed one of
// width × height pixels. On failure the renderer is left without a
// backbuffer; frames are then recorded and discarded until a later Resize
// succeeds.
func (r *Renderer) Resize(width, height int) error {
	if r.state != initialized {
		return ErrNotInitialized
	}

	r.frame = nil
	r.presenter.reset()

	pixels, err := memory.AllocateGrid(width, height, video.BytesPerPixel, r.config.MaxBackbufferBytes)
	if err != nil {
		r.log.Warn("Failed to allocate backbuffer", "width", width, "height", height, "error", err)
		return fmt.Errorf("resize %dx%d: %w", width, height, err)
	}

	frame, err := video.NewFrameBufferFrom(width, height, r.config.RowOrder, pixels)
	if err != nil {
		return fmt.Errorf("resize %dx%d: %w", width, height, err)
	}
	r.frame = frame

	r.log.Debug("Backbuffer resized", "width", width, "height", height, "bytes", len(pixels))
	return nil
}

// BeginFrame sets the surface the frame will be presented to.
func (r *Renderer) BeginFrame(surface Surface) {
	r.surface = surface
}

// Clear records a fill with the current clear colour.
func (r *Renderer) Clear() error {
	return r.record(Clear{Color: r.clearColor})
}

// DrawLine records a line between p1 and p2.
func (r *Renderer) DrawLine(p1, p2 geometry.V2U) error {
	return r.record(Line{P1: p1, P2: p2})
}

// DrawLineXY records a line between (x1, y1) and (x2, y2).
func (r *Renderer) DrawLineXY(x1, y1, x2, y2 uint32) error {
	return r.DrawLine(geometry.NewV2U(x1, y1), geometry.NewV2U(x2, y2))
}

// DrawRect records a filled rectangle.
func (r *Renderer) DrawRect(rect geometry.Rect, c video.Color) error {
	return r.record(Rect{Rect: rect, Color: c})
}

// DrawRectXYWH records a filled rectangle at (x, y) of size w × h.
func (r *Renderer) DrawRectXYWH(x, y, w, h int32, c video.Color) error {
	return r.DrawRect(geometry.NewRect(x, y, w, h), c)
}

// DrawGradient records a coordinate gradient shifted by offset.
func (r *Renderer) DrawGradient(offset geometry.V2U) error {
	return r.record(Gradient{Offset: offset})
}

// DrawGradientXY records a coordinate gradient shifted by (xOffset, yOffset).
func (r *Renderer) DrawGradientXY(xOffset, yOffset uint32) error {
	return r.DrawGradient(geometry.NewV2U(xOffset, yOffset))
}

// Record appends an arbitrary command.
func (r *Renderer) Record(cmd Command) error {
	return r.record(cmd)
}

func (r *Renderer) record(cmd Command) error {
	if r.state != initialized {
		return ErrNotInitialized
	}
	if err := r.queue.Record(cmd); err != nil {
		r.log.Debug("Dropped draw command", "command", cmd.Tag(), "error", err)
		return err
	}
	return nil
}

// EndFrame composites the recorded commands into the backbuffer, resets
// the command buffer and presents the result to the frame's surface.
// Without a backbuffer the commands are discarded and nothing is presented.
// A presentation failure is returned but leaves the renderer usable.
func (r *Renderer) EndFrame() error {
	if r.state != initialized {
		return ErrNotInitialized
	}
	defer r.queue.Reset()

	if r.frame == nil {
		r.log.Debug("Frame skipped, no backbuffer", "commands", r.queue.Len())
		return nil
	}

	cmds, err := r.queue.Commands()
	if err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	Composite(r.frame, cmds, r.clearColor)
	r.frames++

	return r.present(r.surface)
}

// Repaint presents the last composited backbuffer again without replaying
// any commands.
func (r *Renderer) Repaint(surface Surface) error {
	if r.state != initialized {
		return ErrNotInitialized
	}
	if r.frame == nil {
		r.log.Debug("Repaint skipped, no backbuffer")
		return nil
	}
	return r.present(surface)
}

func (r *Renderer) present(surface Surface) error {
	if surface == nil {
		return nil
	}
	if err := r.presenter.present(surface, r.frame, r.offset); err != nil {
		r.log.Warn("Presentation failed, frame skipped", "error", err)
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// DeInit releases the command buffer and the backbuffer. It is safe to call
// more than once and on a renderer that never got a backbuffer.
func (r *Renderer) DeInit() {
	if r.queue != nil {
		r.queue.Release()
		r.queue = nil
	}
	r.frame = nil
	r.surface = nil
	r.presenter.reset()
	if r.state == initialized {
		r.log.Debug("Renderer deinitialized", "frames", r.frames)
	}
	r.state = deinitialized
}

// SetClearColor changes the colour used by Clear and by Nop commands.
func (r *Renderer) SetClearColor(c video.Color) { r.clearColor = c }
func (r *Renderer) ClearColor() video.Color     { return r.clearColor }

// SetXOffset and SetYOffset move the origin of the region presented from
// the backbuffer.
func (r *Renderer) SetXOffset(x int) { r.offset.X = x }
func (r *Renderer) SetYOffset(y int) { r.offset.Y = y }

// Offset returns the presentation source origin.
func (r *Renderer) Offset() image.Point { return r.offset }

// Frame returns the backbuffer, or nil when none is allocated.
func (r *Renderer) Frame() *video.FrameBuffer { return r.frame }

// Snapshot returns the visible contents of the backbuffer.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	if r.frame == nil {
		return nil, ErrNoBackbuffer
	}
	return r.frame.ToRGBA(), nil
}

// CommandCount is the number of commands recorded in the current frame.
func (r *Renderer) CommandCount() int {
	if r.queue == nil {
		return 0
	}
	return r.queue.Len()
}

// Commands exposes the current frame's command buffer.
func (r *Renderer) Commands() *CommandBuffer { return r.queue }

// FrameCount is the number of frames composited so far.
func (r *Renderer) FrameCount() uint64 { return r.frames }
