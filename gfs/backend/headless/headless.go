package headless

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-gfs/gfs/backend"
	"github.com/valerio/go-gfs/gfs/bmr"
	"github.com/valerio/go-gfs/gfs/debug"
	"github.com/valerio/go-gfs/gfs/video"
)

// Backend implements the Backend interface for automated testing and batch
// processing. Frames are presented to an in-memory image.
type Backend struct {
	config         backend.BackendConfig
	surface        *bmr.ImageSurface
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
	pending        []backend.InputEvent
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
}

// New creates a backend that quits after maxFrames frames. Zero means run
// until the host stops.
func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
}

func (h *Backend) Init(config backend.BackendConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("invalid headless surface size %dx%d", config.Width, config.Height)
	}
	h.config = config
	h.surface = bmr.NewImageSurface(config.Width, config.Height)

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"size", fmt.Sprintf("%dx%d", config.Width, config.Height),
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)
	return nil
}

func (h *Backend) Surface() bmr.Surface {
	if h.surface == nil {
		return nil
	}
	return h.surface
}

// Update counts the frame, handles snapshots and returns queued events
func (h *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	events := h.pending
	h.pending = nil

	h.frameCount++

	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot(frame)
	}

	if h.frameCount%10 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.maxFrames > 0 && h.frameCount >= h.maxFrames {
		// Save final snapshot if enabled and we haven't just saved one
		if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval != 0 {
			h.saveSnapshot(frame)
		}

		if h.snapshotConfig.Enabled {
			slog.Info("Headless execution completed", "frames", h.frameCount, "png_snapshots_saved_to", h.snapshotConfig.Directory)
		} else {
			slog.Info("Headless execution completed", "frames", h.frameCount)
		}

		// Signal completion via quit event
		events = append(events, backend.Quit())
	}

	return events, nil
}

func (h *Backend) Cleanup() error {
	if h.surface != nil {
		h.surface.Release()
	}
	return nil
}

// Resize changes the surface size and queues a resize event, as a window
// would when the user drags its border.
func (h *Backend) Resize(width, height int) {
	if h.surface != nil {
		h.surface.Resize(width, height)
	}
	h.pending = append(h.pending, backend.Resized(width, height))
}

// Expose queues an expose event.
func (h *Backend) Expose() {
	h.pending = append(h.pending, backend.Exposed())
}

// Send queues an arbitrary event for the next Update.
func (h *Backend) Send(evt backend.InputEvent) {
	h.pending = append(h.pending, evt)
}

// Image returns the presented image.
func (h *Backend) Image() *bmr.ImageSurface {
	return h.surface
}

// FrameCount returns the number of updates so far.
func (h *Backend) FrameCount() int {
	return h.frameCount
}

// NewSnapshotConfig creates a snapshot configuration from CLI parameters
func NewSnapshotConfig(interval int, directory string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
	}
	if !config.Enabled {
		return config, nil
	}

	dir, err := debug.PrepareSnapshotDir(directory)
	if err != nil {
		return config, err
	}
	config.Directory = dir
	return config, nil
}

// saveSnapshot saves a PNG snapshot for the current frame
func (h *Backend) saveSnapshot(frame *video.FrameBuffer) {
	if frame == nil {
		slog.Warn("Skipping snapshot, no backbuffer", "frame", h.frameCount)
		return
	}
	baseName := fmt.Sprintf("gfs_frame_%d", h.frameCount)
	if _, err := debug.SaveFramePNGToDir(frame, baseName, h.snapshotConfig.Directory); err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frameCount, "error", err)
	}
}
