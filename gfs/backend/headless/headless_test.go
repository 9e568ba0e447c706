package headless_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-gfs/gfs/backend"
	"github.com/valerio/go-gfs/gfs/backend/headless"
	"github.com/valerio/go-gfs/gfs/input/action"
	"github.com/valerio/go-gfs/gfs/input/event"
	"github.com/valerio/go-gfs/gfs/video"
)

func TestHeadlessBackend(t *testing.T) {
	t.Run("normal operation", func(t *testing.T) {
		h := headless.New(3, headless.SnapshotConfig{})
		require.NoError(t, h.Init(backend.BackendConfig{Title: "Test", Width: 8, Height: 6}))

		frame := video.NewFrameBuffer(8, 6, video.BottomUp)

		for i := 0; i < 3; i++ {
			events, err := h.Update(frame)
			require.NoError(t, err)

			if i < 2 {
				assert.Empty(t, events)
			} else {
				require.Len(t, events, 1)
				assert.Equal(t, action.HostQuit, events[0].Action)
				assert.Equal(t, event.Press, events[0].Type)
			}
		}
		assert.Equal(t, 3, h.FrameCount())
		assert.NoError(t, h.Cleanup())
	})

	t.Run("unbounded", func(t *testing.T) {
		h := headless.New(0, headless.SnapshotConfig{})
		require.NoError(t, h.Init(backend.BackendConfig{Width: 2, Height: 2}))

		for i := 0; i < 50; i++ {
			events, err := h.Update(nil)
			require.NoError(t, err)
			require.Empty(t, events)
		}
	})

	t.Run("invalid size", func(t *testing.T) {
		h := headless.New(1, headless.SnapshotConfig{})
		assert.Error(t, h.Init(backend.BackendConfig{Width: 0, Height: 2}))
		assert.Nil(t, h.Surface())
	})
}

func TestHeadlessWindowEvents(t *testing.T) {
	h := headless.New(0, headless.SnapshotConfig{})
	require.NoError(t, h.Init(backend.BackendConfig{Width: 4, Height: 4}))

	h.Resize(10, 5)
	h.Expose()

	events, err := h.Update(nil)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, backend.Resized(10, 5), events[0])
	assert.Equal(t, action.WindowExpose, events[1].Action)

	area, err := h.Surface().ClientArea()
	require.NoError(t, err)
	assert.Equal(t, 10, area.Dx())
	assert.Equal(t, 5, area.Dy())

	events, err = h.Update(nil)
	require.NoError(t, err)
	assert.Empty(t, events, "events are delivered once")
}

func TestHeadlessSnapshots(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	config, err := headless.NewSnapshotConfig(2, dir)
	require.NoError(t, err)
	require.True(t, config.Enabled)

	h := headless.New(5, config)
	require.NoError(t, h.Init(backend.BackendConfig{Width: 2, Height: 2}))

	frame := video.NewFrameBuffer(2, 2, video.BottomUp)
	for i := 0; i < 5; i++ {
		_, err := h.Update(frame)
		require.NoError(t, err)
	}

	// frames 2 and 4, then the final frame 5
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestNewSnapshotConfigDisabled(t *testing.T) {
	config, err := headless.NewSnapshotConfig(0, "")
	require.NoError(t, err)
	assert.False(t, config.Enabled)
	assert.Empty(t, config.Directory)
}

func TestHeadlessImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*headless.Backend)(nil)
}
