package video

import (
	"fmt"
	"image"
)

// BytesPerPixel is fixed: every backbuffer pixel is a 32bpp BI_RGB word.
const BytesPerPixel = 4

// Pixel byte offsets inside a 32bpp BI_RGB pixel.
const (
	blueOffset  = 0
	greenOffset = 1
	redOffset   = 2
	alphaOffset = 3
)

// RowOrder selects how rows are laid out in memory relative to the screen.
type RowOrder int

const (
	// BottomUp stores the bottom screen row first, like a DIB with a
	// positive height.
	BottomUp RowOrder = iota
	// TopDown stores the top screen row first.
	TopDown
)

func (o RowOrder) String() string {
	if o == TopDown {
		return "top-down"
	}
	return "bottom-up"
}

// CompressionRGB marks uncompressed pixel data.
const CompressionRGB = 0

// bitmapHeaderSize is the size in bytes of a BITMAPINFOHEADER.
const bitmapHeaderSize = 40

// BitmapInfo describes the backbuffer layout for presentation. It mirrors
// the fields of a BITMAPINFOHEADER; a negative Height means top-down rows.
type BitmapInfo struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// NewBitmapInfo builds the header for a 32bpp uncompressed bitmap.
func NewBitmapInfo(width, height int, order RowOrder) BitmapInfo {
	h := int32(height)
	if order == TopDown {
		h = -h
	}
	return BitmapInfo{
		Size:        bitmapHeaderSize,
		Width:       int32(width),
		Height:      h,
		Planes:      1,
		BitCount:    BytesPerPixel * 8,
		Compression: CompressionRGB,
	}
}

// RowOrder reports the row order encoded in the header.
func (i BitmapInfo) RowOrder() RowOrder {
	if i.Height < 0 {
		return TopDown
	}
	return BottomUp
}

// FrameBuffer is the backbuffer: width × height pixels of BytesPerPixel
// bytes each, stored B, G, R, A.
type FrameBuffer struct {
	width  int
	height int
	info   BitmapInfo
	buffer []byte
}

// NewFrameBuffer creates a zeroed frame buffer with the specified size.
func NewFrameBuffer(width, height int, order RowOrder) *FrameBuffer {
	fb, _ := NewFrameBufferFrom(width, height, order, make([]byte, width*height*BytesPerPixel))
	return fb
}

// NewFrameBufferFrom wraps pixel memory allocated elsewhere. The slice must
// hold exactly width*height*BytesPerPixel bytes.
func NewFrameBufferFrom(width, height int, order RowOrder, pixels []byte) (*FrameBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame buffer size %dx%d", width, height)
	}
	if want := width * height * BytesPerPixel; len(pixels) != want {
		return nil, fmt.Errorf("frame buffer needs %d bytes, got %d", want, len(pixels))
	}

	return &FrameBuffer{
		width:  width,
		height: height,
		info:   NewBitmapInfo(width, height, order),
		buffer: pixels,
	}, nil
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

// Stride is the number of bytes per row.
func (fb *FrameBuffer) Stride() int { return fb.width * BytesPerPixel }

// Info returns the bitmap header describing the pixel memory.
func (fb *FrameBuffer) Info() BitmapInfo { return fb.info }

// Bounds returns the rectangle covered by the frame buffer.
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

func (fb *FrameBuffer) GetPixel(x, y int) Color {
	i := fb.offset(x, y)
	return Color{
		R: fb.buffer[i+redOffset],
		G: fb.buffer[i+greenOffset],
		B: fb.buffer[i+blueOffset],
		A: fb.buffer[i+alphaOffset],
	}
}

func (fb *FrameBuffer) SetPixel(x, y int, c Color) {
	i := fb.offset(x, y)
	fb.buffer[i+blueOffset] = c.B
	fb.buffer[i+greenOffset] = c.G
	fb.buffer[i+redOffset] = c.R
	fb.buffer[i+alphaOffset] = c.A
}

// Row returns the pixel memory of memory row y.
func (fb *FrameBuffer) Row(y int) []byte {
	start := y * fb.Stride()
	return fb.buffer[start : start+fb.Stride()]
}

// ToSlice exposes the raw pixel memory.
func (fb *FrameBuffer) ToSlice() []byte {
	return fb.buffer
}

// CopyToRGBA converts the frame buffer into dst, which must share its
// bounds. Memory rows are reordered so dst row 0 is the top of the screen.
// The alpha byte is not part of a BI_RGB pixel and is written as opaque.
func (fb *FrameBuffer) CopyToRGBA(dst *image.RGBA) {
	bottomUp := fb.info.RowOrder() == BottomUp
	for y := 0; y < fb.height; y++ {
		src := fb.Row(y)
		dy := y
		if bottomUp {
			dy = fb.height - 1 - y
		}
		out := dst.Pix[dy*dst.Stride : dy*dst.Stride+fb.width*4]
		for x := 0; x < len(src); x += BytesPerPixel {
			out[x] = src[x+redOffset]
			out[x+1] = src[x+greenOffset]
			out[x+2] = src[x+blueOffset]
			out[x+3] = maxChannel
		}
	}
}

// ToRGBA returns a new image with the visible contents of the frame buffer.
func (fb *FrameBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	fb.CopyToRGBA(img)
	return img
}

func (fb *FrameBuffer) offset(x, y int) int {
	return y*fb.Stride() + x*BytesPerPixel
}
