package bmr

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/valerio/go-gfs/gfs/video"
)

// Surface is a presentation target owned by the host: a window client area,
// a terminal, an in-memory image.
type Surface interface {
	// ClientArea returns the destination rectangle in surface coordinates.
	ClientArea() (image.Rectangle, error)
	// Blit copies img, already scaled to dst's size, onto the surface at dst.
	Blit(dst image.Rectangle, img *image.RGBA) error
}

// presenter keeps the conversion and scaling images between frames so a
// steady-state present does not allocate.
type presenter struct {
	src *image.RGBA
	dst *image.RGBA
}

func (p *presenter) reset() {
	p.src = nil
	p.dst = nil
}

// present stretches the backbuffer region starting at offset onto the
// surface's client area. The source region is clipped to the backbuffer.
func (p *presenter) present(s Surface, fb *video.FrameBuffer, offset image.Point) error {
	area, err := s.ClientArea()
	if err != nil {
		return err
	}
	if area.Empty() {
		return nil
	}

	if p.src == nil || p.src.Bounds() != fb.Bounds() {
		p.src = image.NewRGBA(fb.Bounds())
	}
	fb.CopyToRGBA(p.src)

	sr := fb.Bounds().Add(offset).Intersect(fb.Bounds())
	if sr.Empty() {
		return nil
	}

	size := image.Rect(0, 0, area.Dx(), area.Dy())
	if p.dst == nil || p.dst.Bounds() != size {
		p.dst = image.NewRGBA(size)
	}
	xdraw.NearestNeighbor.Scale(p.dst, size, p.src, sr, xdraw.Src, nil)

	return s.Blit(area, p.dst)
}

// Present stretches fb onto the client area of s. It is the one-shot form
// of what EndFrame and Repaint do.
func Present(s Surface, fb *video.FrameBuffer) error {
	var p presenter
	return p.present(s, fb, image.Point{})
}

// ImageSurface is an in-memory Surface backed by an RGBA canvas.
type ImageSurface struct {
	canvas *image.RGBA
	blits  int
}

// NewImageSurface creates a surface with a width × height client area.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{canvas: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (s *ImageSurface) ClientArea() (image.Rectangle, error) {
	if s.canvas == nil {
		return image.Rectangle{}, ErrSurfaceUnavailable
	}
	return s.canvas.Bounds(), nil
}

func (s *ImageSurface) Blit(dst image.Rectangle, img *image.RGBA) error {
	if s.canvas == nil {
		return ErrSurfaceUnavailable
	}
	xdraw.Draw(s.canvas, dst, img, image.Point{}, xdraw.Src)
	s.blits++
	return nil
}

// Resize replaces the canvas with an empty one of the new size.
func (s *ImageSurface) Resize(width, height int) {
	s.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Release drops the canvas; later blits fail with ErrSurfaceUnavailable.
func (s *ImageSurface) Release() {
	s.canvas = nil
}

// Image returns the canvas.
func (s *ImageSurface) Image() *image.RGBA { return s.canvas }

// Blits counts successful blits.
func (s *ImageSurface) Blits() int { return s.blits }
