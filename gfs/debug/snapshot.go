package debug

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"github.com/valerio/go-gfs/gfs/video"
)

// ErrNoFrame is returned when there is no backbuffer to save.
var ErrNoFrame = errors.New("no frame data available for snapshot")

// TakeSnapshot handles on-demand snapshot logic for the host, saving into
// directory or the working directory when it is empty.
func TakeSnapshot(frame *video.FrameBuffer, directory string) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}

	if _, err := SaveFramePNGToDir(frame, "gfs_snapshot", directory); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// SaveFramePNGToDir saves the visible contents of a frame buffer as a
// timestamped PNG and returns the file path. Bottom-up frames are written
// upright.
func SaveFramePNGToDir(frame *video.FrameBuffer, baseName, directory string) (string, error) {
	if frame == nil {
		return "", ErrNoFrame
	}

	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		outputDir = cwd
	}

	timestamp := time.Now().Format("20060102_150405.000")
	filePath := filepath.Join(outputDir, fmt.Sprintf("%s_%s.png", baseName, timestamp))

	if err := imaging.Save(frame.ToRGBA(), filePath); err != nil {
		return "", fmt.Errorf("failed to save PNG %s: %w", filePath, err)
	}

	slog.Info("Snapshot saved",
		"path", filePath,
		"size", fmt.Sprintf("%dx%d", frame.Width(), frame.Height()),
		"row_order", frame.Info().RowOrder())
	return filePath, nil
}

// PrepareSnapshotDir creates directory if needed. An empty directory yields
// a new temporary one.
func PrepareSnapshotDir(directory string) (string, error) {
	if directory == "" {
		tempDir, err := os.MkdirTemp("", "gfs-snapshots-*")
		if err != nil {
			return "", fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		return tempDir, nil
	}

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return directory, nil
}
