package bmr

import (
	"encoding/binary"
	"fmt"

	"github.com/valerio/go-gfs/gfs/geometry"
	"github.com/valerio/go-gfs/gfs/video"
)

// Tag identifies a command in the encoded command stream.
type Tag uint8

const (
	TagNop      Tag = 0
	TagClear    Tag = 1
	TagLine     Tag = 10
	TagRect     Tag = 11
	TagGradient Tag = 20
)

// TagSize is the number of bytes a tag occupies in the stream.
const TagSize = 1

const (
	v2uSize  = 8
	rectSize = 16
)

var tagNames = map[Tag]string{
	TagNop:      "Nop",
	TagClear:    "Clear",
	TagLine:     "Line",
	TagRect:     "Rect",
	TagGradient: "Gradient",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// PayloadSize returns the number of payload bytes following t. Unknown tags
// carry no payload.
func (t Tag) PayloadSize() int {
	switch t {
	case TagClear:
		return video.ColorSize
	case TagLine:
		return 2 * v2uSize
	case TagRect:
		return rectSize + video.ColorSize
	case TagGradient:
		return v2uSize
	default:
		return 0
	}
}

// Command is one recorded draw instruction. The set of implementations is
// closed: Nop, Clear, Line, Rect and Gradient.
type Command interface {
	Tag() Tag
	encode(payload []byte)
}

// Nop draws the clear colour. Unknown tags decode to Nop.
type Nop struct{}

// Clear fills the pixel with Color.
type Clear struct {
	Color video.Color
}

// Line carries two endpoints. It is decoded but not rasterized.
type Line struct {
	P1 geometry.V2U
	P2 geometry.V2U
}

// Rect fills the pixels inside Rect with Color.
type Rect struct {
	Rect  geometry.Rect
	Color video.Color
}

// Gradient colours each pixel from its coordinate plus Offset.
type Gradient struct {
	Offset geometry.V2U
}

func (Nop) Tag() Tag      { return TagNop }
func (Clear) Tag() Tag    { return TagClear }
func (Line) Tag() Tag     { return TagLine }
func (Rect) Tag() Tag     { return TagRect }
func (Gradient) Tag() Tag { return TagGradient }

func (Nop) encode([]byte) {}

func (c Clear) encode(p []byte) {
	putColor(p, c.Color)
}

func (l Line) encode(p []byte) {
	putV2U(p, l.P1)
	putV2U(p[v2uSize:], l.P2)
}

func (r Rect) encode(p []byte) {
	binary.LittleEndian.PutUint32(p[0:], uint32(r.Rect.X))
	binary.LittleEndian.PutUint32(p[4:], uint32(r.Rect.Y))
	binary.LittleEndian.PutUint32(p[8:], uint32(r.Rect.Width))
	binary.LittleEndian.PutUint32(p[12:], uint32(r.Rect.Height))
	putColor(p[rectSize:], r.Color)
}

func (g Gradient) encode(p []byte) {
	putV2U(p, g.Offset)
}

// EncodedSize is the number of bytes cmd occupies in the stream.
func EncodedSize(cmd Command) int {
	return TagSize + cmd.Tag().PayloadSize()
}

// Encode writes cmd into dst, which must hold at least EncodedSize(cmd) bytes.
func Encode(dst []byte, cmd Command) {
	dst[0] = byte(cmd.Tag())
	cmd.encode(dst[TagSize:])
}

// Decode reads the command at the start of src and returns it with the
// number of bytes consumed.
func Decode(src []byte) (Command, int, error) {
	if len(src) < TagSize {
		return nil, 0, fmt.Errorf("%w: missing tag", ErrCorruptStream)
	}

	tag := Tag(src[0])
	n := TagSize + tag.PayloadSize()
	if len(src) < n {
		return nil, 0, fmt.Errorf("%w: %s needs %d bytes, %d left", ErrCorruptStream, tag, n, len(src))
	}
	p := src[TagSize:n]

	switch tag {
	case TagClear:
		return Clear{Color: getColor(p)}, n, nil
	case TagLine:
		return Line{P1: getV2U(p), P2: getV2U(p[v2uSize:])}, n, nil
	case TagRect:
		return Rect{
			Rect: geometry.Rect{
				X:      int32(binary.LittleEndian.Uint32(p[0:])),
				Y:      int32(binary.LittleEndian.Uint32(p[4:])),
				Width:  int32(binary.LittleEndian.Uint32(p[8:])),
				Height: int32(binary.LittleEndian.Uint32(p[12:])),
			},
			Color: getColor(p[rectSize:]),
		}, n, nil
	case TagGradient:
		return Gradient{Offset: getV2U(p)}, n, nil
	default:
		return Nop{}, n, nil
	}
}

// Colours are stored in pixel byte order (B, G, R, A).
func putColor(p []byte, c video.Color) {
	p[0], p[1], p[2], p[3] = c.B, c.G, c.R, c.A
}

func getColor(p []byte) video.Color {
	return video.Color{B: p[0], G: p[1], R: p[2], A: p[3]}
}

func putV2U(p []byte, v geometry.V2U) {
	binary.LittleEndian.PutUint32(p[0:], v.X)
	binary.LittleEndian.PutUint32(p[4:], v.Y)
}

func getV2U(p []byte) geometry.V2U {
	return geometry.V2U{
		X: binary.LittleEndian.Uint32(p[0:]),
		Y: binary.LittleEndian.Uint32(p[4:]),
	}
}
