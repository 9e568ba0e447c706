package gfs

import (
	"errors"

	"github.com/valerio/go-gfs/gfs/bmr"
	"github.com/valerio/go-gfs/gfs/display"
	"github.com/valerio/go-gfs/gfs/geometry"
	"github.com/valerio/go-gfs/gfs/input"
	"github.com/valerio/go-gfs/gfs/video"
)

// PlayerColor is the fill colour of the player rectangle
var PlayerColor = video.Red.Add(video.Blue)

// Demo draws a scrolling gradient, a player rectangle moved by the d-pad
// and a line. Each Frame call records one frame worth of commands.
type Demo struct {
	player geometry.Rect
	offset uint32
	pad    *input.DPad
}

// NewDemo creates a demo reading movement from pad. A nil pad never moves
// the player.
func NewDemo(pad *input.DPad) *Demo {
	if pad == nil {
		pad = &input.DPad{}
	}
	return &Demo{
		player: geometry.NewRect(display.PlayerInitX, display.PlayerInitY, display.PlayerWidth, display.PlayerHeight),
		pad:    pad,
	}
}

// Frame moves the player and records the frame's draw list into r.
// Commands rejected by a full buffer are reported together; the rest of
// the list is still recorded.
func (d *Demo) Frame(r *bmr.Renderer) error {
	dx, dy := d.pad.Delta(display.PlayerSpeed)
	d.player = d.player.Translate(dx, dy)

	err := errors.Join(
		r.Clear(),
		r.DrawGradientXY(d.offset, d.offset),
		r.DrawRect(d.player, PlayerColor),
		r.DrawLineXY(display.LineX1, display.LineY1, display.LineX2, display.LineY2),
	)
	d.offset++
	return err
}

// Player returns the current player rectangle
func (d *Demo) Player() geometry.Rect { return d.player }

// Offset returns the gradient offset of the next frame
func (d *Demo) Offset() uint32 { return d.offset }
