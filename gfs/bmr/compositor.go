package bmr

import "github.com/valerio/go-gfs/gfs/video"

// Shade evaluates cmd at pixel (x, y). It returns the colour the command
// writes and whether it writes at all. Nop writes clearColor.
func Shade(cmd Command, x, y int, clearColor video.Color) (video.Color, bool) {
	switch c := cmd.(type) {
	case Clear:
		return c.Color, true
	case Rect:
		if c.Rect.Contains(x, y) {
			return c.Color, true
		}
		return video.Color{}, false
	case Gradient:
		// Channels are truncated to 8 bits, giving a repeating diagonal ramp.
		return video.RGBA(uint8(uint32(x)+c.Offset.X), uint8(uint32(y)+c.Offset.Y), 0, 0), true
	case Line:
		return video.Color{}, false
	default:
		return clearColor, true
	}
}

// Composite replays cmds for every pixel of fb in row-major order. Later
// commands overwrite earlier ones; a pixel no command writes keeps its
// previous value.
func Composite(fb *video.FrameBuffer, cmds []Command, clearColor video.Color) {
	if len(cmds) == 0 {
		return
	}

	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			var (
				pixel   video.Color
				written bool
			)
			for _, cmd := range cmds {
				if c, ok := Shade(cmd, x, y, clearColor); ok {
					pixel = c
					written = true
				}
			}
			if written {
				fb.SetPixel(x, y, pixel)
			}
		}
	}
}
