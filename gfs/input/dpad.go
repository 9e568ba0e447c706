package input

import "github.com/valerio/go-gfs/gfs/input/action"

// Direction is a set of pressed d-pad directions
type Direction uint8

const (
	DirUp Direction = 1 << iota
	DirDown
	DirLeft
	DirRight
)

// DirectionOf maps a movement action to its direction
func DirectionOf(act action.Action) (Direction, bool) {
	switch act {
	case action.PlayerUp:
		return DirUp, true
	case action.PlayerDown:
		return DirDown, true
	case action.PlayerLeft:
		return DirLeft, true
	case action.PlayerRight:
		return DirRight, true
	default:
		return 0, false
	}
}

// DPad tracks which directions are held. Keyboard and gamepad input both
// feed the same state.
type DPad struct {
	held Direction
}

func (d *DPad) Press(dir Direction)   { d.held |= dir }
func (d *DPad) Release(dir Direction) { d.held &^= dir }
func (d *DPad) Reset()                { d.held = 0 }

// Held reports whether every direction in dir is held
func (d *DPad) Held(dir Direction) bool { return dir != 0 && d.held&dir == dir }

// State returns all held directions
func (d *DPad) State() Direction { return d.held }

// Delta returns the movement for one frame at the given speed. Up is +Y.
func (d *DPad) Delta(speed int32) (dx, dy int32) {
	if d.Held(DirLeft) {
		dx -= speed
	}
	if d.Held(DirRight) {
		dx += speed
	}
	if d.Held(DirDown) {
		dy -= speed
	}
	if d.Held(DirUp) {
		dy += speed
	}
	return dx, dy
}
