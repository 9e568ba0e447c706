package gfs_test

import (
	"context"
	"image/color"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-gfs/gfs"
	"github.com/valerio/go-gfs/gfs/backend"
	"github.com/valerio/go-gfs/gfs/backend/headless"
	"github.com/valerio/go-gfs/gfs/bmr"
	"github.com/valerio/go-gfs/gfs/input/action"
	"github.com/valerio/go-gfs/gfs/video"
)

func newHost(t *testing.T, b *headless.Backend, opts gfs.Options) *gfs.Host {
	t.Helper()
	opts.Backend = b
	if opts.Width == 0 {
		opts.Width, opts.Height = 40, 30
	}
	h, err := gfs.NewHost(opts)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func step(t *testing.T, h *gfs.Host) bool {
	t.Helper()
	running, err := h.Step()
	require.NoError(t, err)
	return running
}

func TestNewHostRequiresBackend(t *testing.T) {
	_, err := gfs.NewHost(gfs.Options{})
	assert.Error(t, err)
}

func TestHostRunsUntilBackendQuits(t *testing.T) {
	b := headless.New(3, headless.SnapshotConfig{})
	h := newHost(t, b, gfs.Options{})

	require.NoError(t, h.Run(context.Background()))
	assert.Equal(t, 3, b.FrameCount())
	assert.Equal(t, uint64(3), h.Renderer().FrameCount())

	// bottom-up: the image's top row is the last backbuffer row, drawn
	// with gradient offset 2
	img := b.Image().Image()
	assert.Equal(t, color.RGBA{R: 2, G: 31, A: 0xFF}, img.RGBAAt(0, 0))
}

func TestHostRunStopsOnCancel(t *testing.T) {
	b := headless.New(0, headless.SnapshotConfig{})
	h := newHost(t, b, gfs.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, h.Run(ctx))
	assert.Zero(t, b.FrameCount())
}

func TestHostQuitAction(t *testing.T) {
	b := headless.New(0, headless.SnapshotConfig{})
	h := newHost(t, b, gfs.Options{})

	assert.True(t, step(t, h))
	b.Send(backend.Quit())
	assert.False(t, step(t, h))
}

func TestHostResize(t *testing.T) {
	b := headless.New(0, headless.SnapshotConfig{})
	h := newHost(t, b, gfs.Options{})
	step(t, h)

	b.Resize(20, 10)
	step(t, h)

	fb := h.Renderer().Frame()
	require.NotNil(t, fb)
	assert.Equal(t, 20, fb.Width())
	assert.Equal(t, 10, fb.Height())
}

func TestHostExposeRepaints(t *testing.T) {
	b := headless.New(0, headless.SnapshotConfig{})
	h := newHost(t, b, gfs.Options{})
	step(t, h)
	require.Equal(t, 1, b.Image().Blits())

	b.Expose()
	step(t, h)
	assert.Equal(t, 3, b.Image().Blits(), "one blit for the frame and one for the repaint")
	assert.Equal(t, uint64(2), h.Renderer().FrameCount())
}

func TestHostToleratesAllocationFailure(t *testing.T) {
	b := headless.New(0, headless.SnapshotConfig{})
	h := newHost(t, b, gfs.Options{Renderer: bmr.Config{MaxBackbufferBytes: 100}})
	assert.Nil(t, h.Renderer().Frame())

	assert.True(t, step(t, h))
	assert.Zero(t, b.Image().Blits())

	b.Resize(4, 4)
	step(t, h)
	require.NotNil(t, h.Renderer().Frame())

	step(t, h)
	assert.Equal(t, 1, b.Image().Blits())
}

func TestHostSurvivesHugeResize(t *testing.T) {
	b := headless.New(0, headless.SnapshotConfig{})
	h := newHost(t, b, gfs.Options{})
	step(t, h)

	b.Send(backend.Resized(1<<24, 1<<24))
	assert.True(t, step(t, h))
	assert.Nil(t, h.Renderer().Frame())

	b.Send(backend.Resized(8, 6))
	step(t, h)
	require.NotNil(t, h.Renderer().Frame())
}

func TestHostClearColor(t *testing.T) {
	tests := []struct {
		name  string
		color *video.Color
		want  video.Color
	}{
		{"default is white", nil, video.White},
		{"black", &video.Black, video.Black},
		{"yellow", &video.Yellow, video.Yellow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := headless.New(0, headless.SnapshotConfig{})
			h := newHost(t, b, gfs.Options{ClearColor: tt.color})
			assert.Equal(t, tt.want, h.Renderer().ClearColor())
		})
	}
}

func TestHostMovement(t *testing.T) {
	b := headless.New(0, headless.SnapshotConfig{})
	h := newHost(t, b, gfs.Options{})

	b.Send(backend.Press(action.PlayerRight))
	step(t, h)
	step(t, h)
	assert.Equal(t, int32(110), h.Demo().Player().X)

	b.Send(backend.Release(action.PlayerRight))
	step(t, h)
	assert.Equal(t, int32(120), h.Demo().Player().X)
	step(t, h)
	assert.Equal(t, int32(120), h.Demo().Player().X)
}

func TestHostLogLevelActions(t *testing.T) {
	level := new(slog.LevelVar)
	b := headless.New(0, headless.SnapshotConfig{})
	h := newHost(t, b, gfs.Options{LogLevel: level})

	b.Send(backend.Press(action.DebugLogLevelIncrease))
	step(t, h)
	assert.Equal(t, slog.LevelDebug, level.Level())

	b.Send(backend.Press(action.DebugLogLevelDecrease))
	step(t, h)
	assert.Equal(t, slog.LevelInfo, level.Level())
}

func TestHostSnapshotAction(t *testing.T) {
	dir := t.TempDir()
	b := headless.New(0, headless.SnapshotConfig{})
	h := newHost(t, b, gfs.Options{SnapshotDir: dir})

	step(t, h)
	b.Send(backend.Press(action.HostSnapshot))
	step(t, h)

	files, err := filepath.Glob(filepath.Join(dir, "*.png"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestHostAudioToggleWithoutPlayer(t *testing.T) {
	b := headless.New(0, headless.SnapshotConfig{})
	h := newHost(t, b, gfs.Options{})

	b.Send(backend.Press(action.HostAudioToggle))
	assert.True(t, step(t, h))
}
