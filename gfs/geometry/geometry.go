package geometry

// V2U is a point or offset with unsigned components.
type V2U struct {
	X uint32
	Y uint32
}

// NewV2U creates a V2U from its components.
func NewV2U(x, y uint32) V2U {
	return V2U{X: x, Y: y}
}

// Rect is an axis-aligned rectangle with an integer origin and extents.
// Width and Height are not clamped; a rectangle with a non-positive extent
// contains no points.
type Rect struct {
	X      int32
	Y      int32
	Width  int32
	Height int32
}

// NewRect creates a rectangle at (x, y) with the given extents.
func NewRect(x, y, w, h int32) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Contains reports whether (x, y) lies in [X, X+Width) × [Y, Y+Height).
func (r Rect) Contains(x, y int) bool {
	px, py := int64(x), int64(y)
	left, top := int64(r.X), int64(r.Y)
	return px >= left && px < left+int64(r.Width) &&
		py >= top && py < top+int64(r.Height)
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int32) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Empty reports whether r contains no points.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
