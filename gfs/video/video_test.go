package video

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorAddWraps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Color
		expected Color
	}{
		{"red overflow", RGBA(200, 0, 0, 0), RGBA(100, 0, 0, 0), RGBA(44, 0, 0, 0)},
		{"all channels", RGBA(255, 255, 255, 255), RGBA(1, 2, 3, 4), RGBA(0, 1, 2, 3)},
		{"no overflow", RGBA(10, 20, 30, 40), RGBA(1, 1, 1, 1), RGBA(11, 21, 31, 41)},
		{"yellow", Green, Red, RGBA(255, 255, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Add(tt.b))
		})
	}

	assert.Equal(t, Yellow, Green.Add(Red))
}

func TestColorPacking(t *testing.T) {
	c := RGBA(0x12, 0x34, 0x56, 0x78)

	assert.Equal(t, uint32(0x78123456), c.Uint32())
	assert.Equal(t, c, ColorFromUint32(c.Uint32()))
	assert.Equal(t, "#12345678", c.String())
}

func TestBitmapInfo(t *testing.T) {
	bottomUp := NewBitmapInfo(900, 600, BottomUp)
	assert.Equal(t, uint32(40), bottomUp.Size)
	assert.Equal(t, int32(900), bottomUp.Width)
	assert.Equal(t, int32(600), bottomUp.Height)
	assert.Equal(t, uint16(1), bottomUp.Planes)
	assert.Equal(t, uint16(32), bottomUp.BitCount)
	assert.Equal(t, uint32(CompressionRGB), bottomUp.Compression)
	assert.Equal(t, BottomUp, bottomUp.RowOrder())

	topDown := NewBitmapInfo(900, 600, TopDown)
	assert.Equal(t, int32(-600), topDown.Height)
	assert.Equal(t, TopDown, topDown.RowOrder())
}

func TestFrameBufferPixels(t *testing.T) {
	fb := NewFrameBuffer(4, 3, TopDown)
	require.NotNil(t, fb)

	assert.Equal(t, 4, fb.Width())
	assert.Equal(t, 3, fb.Height())
	assert.Equal(t, 16, fb.Stride())
	assert.Len(t, fb.ToSlice(), 4*3*BytesPerPixel)

	for _, b := range fb.ToSlice() {
		assert.Zero(t, b)
	}

	c := RGBA(1, 2, 3, 4)
	fb.SetPixel(2, 1, c)
	assert.Equal(t, c, fb.GetPixel(2, 1))

	// B, G, R, A in memory
	assert.Equal(t, []byte{3, 2, 1, 4}, fb.Row(1)[8:12])
}

func TestNewFrameBufferFromValidates(t *testing.T) {
	_, err := NewFrameBufferFrom(2, 2, BottomUp, make([]byte, 15))
	assert.Error(t, err)

	_, err = NewFrameBufferFrom(0, 2, BottomUp, nil)
	assert.Error(t, err)

	fb, err := NewFrameBufferFrom(2, 2, BottomUp, make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, BottomUp, fb.Info().RowOrder())
}

func TestCopyToRGBARowOrder(t *testing.T) {
	tests := []struct {
		name      string
		order     RowOrder
		visibleY0 int // image row showing memory row 0
	}{
		{"bottom-up flips rows", BottomUp, 1},
		{"top-down keeps rows", TopDown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFrameBuffer(2, 2, tt.order)
			fb.SetPixel(0, 0, Red)

			img := fb.ToRGBA()

			assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, tt.visibleY0))
			assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(0, 1-tt.visibleY0))
		})
	}
}
