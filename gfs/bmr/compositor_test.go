package bmr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-gfs/gfs/geometry"
	"github.com/valerio/go-gfs/gfs/video"
)

func newTestRenderer(t *testing.T, width, height int) *Renderer {
	t.Helper()
	r, err := Init(video.White)
	require.NoError(t, err)
	require.NoError(t, r.Resize(width, height))
	t.Cleanup(r.DeInit)
	return r
}

func assertEveryPixel(t *testing.T, fb *video.FrameBuffer, expected func(x, y int) video.Color) {
	t.Helper()
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if !assert.Equal(t, expected(x, y), fb.GetPixel(x, y), "pixel (%d, %d)", x, y) {
				return
			}
		}
	}
}

func TestShade(t *testing.T) {
	clearColor := video.RGBA(9, 9, 9, 9)
	rect := Rect{Rect: geometry.NewRect(2, 2, 3, 3), Color: video.Green}

	tests := []struct {
		name    string
		cmd     Command
		x, y    int
		color   video.Color
		written bool
	}{
		{"clear always writes", Clear{Color: video.Red}, 7, 3, video.Red, true},
		{"rect inside", rect, 2, 4, video.Green, true},
		{"rect outside", rect, 5, 2, video.Color{}, false},
		{"gradient", Gradient{Offset: geometry.NewV2U(1, 2)}, 10, 20, video.RGBA(11, 22, 0, 0), true},
		{"gradient wraps", Gradient{Offset: geometry.NewV2U(250, 0)}, 10, 300, video.RGBA(4, 44, 0, 0), true},
		{"line has no effect", Line{P1: geometry.NewV2U(0, 0), P2: geometry.NewV2U(9, 9)}, 1, 1, video.Color{}, false},
		{"nop uses clear colour", Nop{}, 0, 0, clearColor, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Shade(tt.cmd, tt.x, tt.y, clearColor)
			assert.Equal(t, tt.written, ok)
			assert.Equal(t, tt.color, c)
		})
	}
}

func TestEndFrameSingleClear(t *testing.T) {
	r := newTestRenderer(t, 16, 9)
	c := video.RGBA(10, 20, 30, 40)
	r.SetClearColor(c)

	require.NoError(t, r.Clear())
	require.NoError(t, r.EndFrame())

	assertEveryPixel(t, r.Frame(), func(int, int) video.Color { return c })
}

func TestEndFrameLastWriteWins(t *testing.T) {
	r := newTestRenderer(t, 8, 8)
	r.SetClearColor(video.Red)

	require.NoError(t, r.Clear())
	require.NoError(t, r.DrawRect(geometry.NewRect(2, 2, 3, 3), video.Blue))
	require.NoError(t, r.EndFrame())

	assertEveryPixel(t, r.Frame(), func(x, y int) video.Color {
		if x >= 2 && x < 5 && y >= 2 && y < 5 {
			return video.Blue
		}
		return video.Red
	})
}

func TestEndFrameOrderMatters(t *testing.T) {
	r := newTestRenderer(t, 8, 8)
	r.SetClearColor(video.Red)

	require.NoError(t, r.DrawRect(geometry.NewRect(2, 2, 3, 3), video.Blue))
	require.NoError(t, r.Clear())
	require.NoError(t, r.EndFrame())

	assertEveryPixel(t, r.Frame(), func(int, int) video.Color { return video.Red })
}

func TestEndFrameGradient(t *testing.T) {
	r := newTestRenderer(t, 300, 260)

	require.NoError(t, r.DrawGradient(geometry.NewV2U(0, 0)))
	require.NoError(t, r.EndFrame())

	assertEveryPixel(t, r.Frame(), func(x, y int) video.Color {
		return video.RGBA(uint8(x%256), uint8(y%256), 0, 0)
	})
}

func TestEndFrameLineLeavesPixels(t *testing.T) {
	r := newTestRenderer(t, 6, 6)

	require.NoError(t, r.Clear())
	require.NoError(t, r.DrawLineXY(0, 0, 5, 5))
	require.NoError(t, r.EndFrame())

	assertEveryPixel(t, r.Frame(), func(int, int) video.Color { return video.White })
}

func TestEndFrameUnknownTagUsesClearColor(t *testing.T) {
	r := newTestRenderer(t, 3, 3)
	r.SetClearColor(video.Green)

	require.NoError(t, r.DrawRectXYWH(0, 0, 3, 3, video.Red))
	raw, err := r.queue.arena.Alloc(TagSize)
	require.NoError(t, err)
	raw[0] = 0x7F
	r.queue.count++

	require.NoError(t, r.EndFrame())
	assertEveryPixel(t, r.Frame(), func(int, int) video.Color { return video.Green })
}

func TestEndFrameResetsCommands(t *testing.T) {
	r := newTestRenderer(t, 4, 4)

	require.NoError(t, r.Clear())
	require.NoError(t, r.DrawGradientXY(1, 1))
	assert.Equal(t, 2, r.CommandCount())

	require.NoError(t, r.EndFrame())
	assert.Equal(t, 0, r.CommandCount())
	assert.Equal(t, 0, r.Commands().Size())
	assert.Equal(t, uint64(1), r.FrameCount())
}

func TestEndFrameWithoutCommandsKeepsPixels(t *testing.T) {
	r := newTestRenderer(t, 4, 4)

	require.NoError(t, r.DrawRectXYWH(0, 0, 2, 2, video.Blue))
	require.NoError(t, r.EndFrame())
	require.NoError(t, r.EndFrame())

	assert.Equal(t, video.Blue, r.Frame().GetPixel(1, 1))
	assert.Equal(t, video.Black, r.Frame().GetPixel(3, 3))
}
