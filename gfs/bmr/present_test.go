package bmr

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-gfs/gfs/video"
)

var opaqueRed = color.RGBA{R: 0xFF, A: 0xFF}
var opaqueWhite = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

type flakySurface struct {
	*ImageSurface
	failures int
}

func (s *flakySurface) ClientArea() (image.Rectangle, error) {
	if s.failures > 0 {
		s.failures--
		return image.Rectangle{}, errors.New("window minimized")
	}
	return s.ImageSurface.ClientArea()
}

func TestPresentScalesToClientArea(t *testing.T) {
	tests := []struct {
		name  string
		order video.RowOrder
		// image rows covered by memory row 0 after a 2x stretch
		rows []int
	}{
		{"bottom-up", video.BottomUp, []int{2, 3}},
		{"top-down", video.TopDown, []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := video.NewFrameBuffer(4, 2, tt.order)
			for y := 0; y < 2; y++ {
				for x := 0; x < 4; x++ {
					fb.SetPixel(x, y, video.White)
				}
			}
			fb.SetPixel(0, 0, video.Red)

			s := NewImageSurface(8, 4)
			require.NoError(t, Present(s, fb))
			assert.Equal(t, 1, s.Blits())

			img := s.Image()
			for y := 0; y < 4; y++ {
				for x := 0; x < 8; x++ {
					want := opaqueWhite
					if x < 2 && (y == tt.rows[0] || y == tt.rows[1]) {
						want = opaqueRed
					}
					require.Equal(t, want, img.RGBAAt(x, y), "pixel (%d, %d)", x, y)
				}
			}
		})
	}
}

func TestPresentIgnoresAlpha(t *testing.T) {
	fb := video.NewFrameBuffer(1, 1, video.TopDown)
	fb.SetPixel(0, 0, video.RGBA(1, 2, 3, 0))

	s := NewImageSurface(1, 1)
	require.NoError(t, Present(s, fb))
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 0xFF}, s.Image().RGBAAt(0, 0))
}

func TestPresentWithOffset(t *testing.T) {
	r, err := InitWithConfig(video.White, Config{RowOrder: video.TopDown})
	require.NoError(t, err)
	t.Cleanup(r.DeInit)
	require.NoError(t, r.Resize(4, 1))

	for x := 0; x < 4; x++ {
		r.Frame().SetPixel(x, 0, video.RGBA(uint8(x*10), 0, 0, 0xFF))
	}

	s := NewImageSurface(4, 1)
	r.SetXOffset(2)
	require.NoError(t, r.Repaint(s))

	img := s.Image()
	assert.Equal(t, uint8(20), img.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(20), img.RGBAAt(1, 0).R)
	assert.Equal(t, uint8(30), img.RGBAAt(2, 0).R)
	assert.Equal(t, uint8(30), img.RGBAAt(3, 0).R)

	// an offset past the backbuffer leaves nothing to present
	r.SetXOffset(10)
	require.NoError(t, r.Repaint(s))
	assert.Equal(t, 1, s.Blits())
}

func TestEndFramePresents(t *testing.T) {
	r := newTestRenderer(t, 3, 3)
	s := NewImageSurface(6, 6)

	r.BeginFrame(s)
	require.NoError(t, r.Clear())
	require.NoError(t, r.EndFrame())

	assert.Equal(t, 1, s.Blits())
	assert.Equal(t, opaqueWhite, s.Image().RGBAAt(5, 5))
}

func TestRepaintDoesNotRecompute(t *testing.T) {
	r := newTestRenderer(t, 2, 2)
	r.SetClearColor(video.Red)

	r.BeginFrame(nil)
	require.NoError(t, r.Clear())
	require.NoError(t, r.EndFrame())
	require.Equal(t, uint64(1), r.FrameCount())

	// commands pending at repaint time must not be applied
	require.NoError(t, r.DrawRectXYWH(0, 0, 2, 2, video.Blue))

	s := NewImageSurface(2, 2)
	require.NoError(t, r.Repaint(s))
	assert.Equal(t, uint64(1), r.FrameCount())
	assert.Equal(t, opaqueRed, s.Image().RGBAAt(0, 0))
	assert.Equal(t, 1, r.CommandCount())
}

func TestRepaintWithoutBackbuffer(t *testing.T) {
	r, err := Init(video.White)
	require.NoError(t, err)
	t.Cleanup(r.DeInit)

	s := NewImageSurface(2, 2)
	require.NoError(t, r.Repaint(s))
	assert.Equal(t, 0, s.Blits())
}

func TestPresentationFailureIsRecoverable(t *testing.T) {
	r := newTestRenderer(t, 2, 2)
	s := &flakySurface{ImageSurface: NewImageSurface(2, 2), failures: 1}

	r.BeginFrame(s)
	require.NoError(t, r.Clear())
	assert.Error(t, r.EndFrame())
	assert.Equal(t, 0, r.CommandCount(), "commands are dropped even when presentation fails")
	assert.Equal(t, 0, s.Blits())

	r.BeginFrame(s)
	require.NoError(t, r.Clear())
	require.NoError(t, r.EndFrame())
	assert.Equal(t, 1, s.Blits())
}

func TestReleasedImageSurface(t *testing.T) {
	r := newTestRenderer(t, 2, 2)
	s := NewImageSurface(2, 2)
	s.Release()

	r.BeginFrame(s)
	require.NoError(t, r.Clear())
	assert.ErrorIs(t, r.EndFrame(), ErrSurfaceUnavailable)

	s.Resize(4, 4)
	require.NoError(t, r.Repaint(s))
	assert.Equal(t, 1, s.Blits())
}

func TestPresentEmptyClientArea(t *testing.T) {
	fb := video.NewFrameBuffer(2, 2, video.BottomUp)
	s := NewImageSurface(0, 0)

	require.NoError(t, Present(s, fb))
	assert.Equal(t, 0, s.Blits())
}
