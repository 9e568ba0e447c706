package video

import "fmt"

// Color is a 32-bit colour with four 8-bit channels.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// ColorSize is the number of bytes a Color occupies in a pixel or command payload.
const ColorSize = 4

const maxChannel = 0xFF

var (
	White  = RGBA(maxChannel, maxChannel, maxChannel, maxChannel)
	Red    = RGBA(maxChannel, 0, 0, 0)
	Green  = RGBA(0, maxChannel, 0, 0)
	Blue   = RGBA(0, 0, maxChannel, 0)
	Black  = RGBA(0, 0, 0, 0)
	Yellow = Green.Add(Red)
)

// RGBA builds a colour from its channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Add sums two colours channel by channel. Channels wrap on overflow.
func (c Color) Add(other Color) Color {
	return Color{
		R: c.R + other.R,
		G: c.G + other.G,
		B: c.B + other.B,
		A: c.A + other.A,
	}
}

// Uint32 packs the colour as 0xAARRGGBB, the layout of a 32bpp BI_RGB pixel
// read as a little-endian word.
func (c Color) Uint32() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// ColorFromUint32 unpacks a 0xAARRGGBB word.
func ColorFromUint32(v uint32) Color {
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(v >> 24),
	}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
