package memory

import (
	"errors"
	"fmt"
	"math"
)

const (
	Kilobyte = 1024
	Megabyte = 1024 * Kilobyte
	Gigabyte = 1024 * Megabyte
)

var (
	// ErrOutOfSpace is returned when an arena cannot satisfy an allocation.
	ErrOutOfSpace = errors.New("arena out of space")
	// ErrAllocation is returned when a region cannot be allocated at all.
	ErrAllocation = errors.New("allocation failed")
	// ErrReleased is returned when a freed arena is used again.
	ErrReleased = errors.New("arena released")
)

// Arena is a bump allocator over a single fixed-capacity region. The region
// is allocated once, zero filled, and handed out front to back; Reset makes
// the whole region available again without touching its bytes.
type Arena struct {
	data     []byte
	occupied int
}

// NewArena allocates an arena of the given capacity in bytes.
func NewArena(capacity int) (*Arena, error) {
	data, err := Allocate(capacity, 0)
	if err != nil {
		return nil, err
	}
	return &Arena{data: data}, nil
}

// Alloc hands out the next n bytes of the region. The returned slice aliases
// the arena and stays valid until the next Reset or Free.
func (a *Arena) Alloc(n int) ([]byte, error) {
	if a.data == nil {
		return nil, ErrReleased
	}
	if n < 0 {
		return nil, fmt.Errorf("negative allocation size %d", n)
	}
	if !a.HasSpace(n) {
		return nil, fmt.Errorf("%w: need %d bytes, %d of %d used", ErrOutOfSpace, n, a.occupied, len(a.data))
	}

	start := a.occupied
	a.occupied += n
	return a.data[start:a.occupied:a.occupied], nil
}

// HasSpace reports whether n more bytes fit.
func (a *Arena) HasSpace(n int) bool {
	return a.occupied+n <= len(a.data)
}

// Reset rewinds the arena to empty in O(1). Memory is not cleared.
func (a *Arena) Reset() {
	a.occupied = 0
}

// Free releases the region. Calling Free more than once is a no-op.
func (a *Arena) Free() {
	a.data = nil
	a.occupied = 0
}

// Released reports whether Free has been called.
func (a *Arena) Released() bool {
	return a.data == nil
}

func (a *Arena) Capacity() int { return len(a.data) }
func (a *Arena) Occupied() int { return a.occupied }

// Bytes returns the allocated prefix of the region.
func (a *Arena) Bytes() []byte {
	return a.data[:a.occupied]
}

// Allocate returns a zeroed region of size bytes. A positive limit caps the
// size; requests above it fail with ErrAllocation instead of exhausting
// memory.
func Allocate(size, limit int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: invalid size %d", ErrAllocation, size)
	}
	if limit > 0 && size > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrAllocation, size, limit)
	}
	return make([]byte, size), nil
}

// AllocateGrid returns a zeroed region of width × height cells of
// cellSize bytes each. Sizes whose byte count does not fit in an int fail
// with ErrAllocation, as do sizes over a positive limit.
func AllocateGrid(width, height, cellSize, limit int) ([]byte, error) {
	if width <= 0 || height <= 0 || cellSize <= 0 {
		return nil, fmt.Errorf("%w: invalid grid %dx%d of %d byte cells", ErrAllocation, width, height, cellSize)
	}
	if width > math.MaxInt/height/cellSize {
		return nil, fmt.Errorf("%w: grid %dx%d of %d byte cells overflows", ErrAllocation, width, height, cellSize)
	}
	return Allocate(width*height*cellSize, limit)
}
