package render

import "image/color"

const (
	// UpperHalfBlock draws the foreground in the top half of a cell
	UpperHalfBlock = '▀'
	// FullBlock draws the foreground in the whole cell
	FullBlock = '█'
)

// HalfBlock returns the glyph and colors that show two vertically stacked
// pixels in one terminal cell.
func HalfBlock(top, bottom color.RGBA) (glyph rune, fg, bg color.RGBA) {
	if top == bottom {
		return FullBlock, top, top
	}
	return UpperHalfBlock, top, bottom
}

// Truncate shortens s to at most width runes, marking the cut with "...".
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width > 3 {
		return string(runes[:width-3]) + "..."
	}
	if width > 0 {
		return string(runes[:width])
	}
	return ""
}
