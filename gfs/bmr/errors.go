package bmr

import "errors"

var (
	// ErrCapacityExceeded is returned when a command does not fit in the
	// remaining command buffer space. The command is dropped.
	ErrCapacityExceeded = errors.New("command buffer capacity exceeded")
	// ErrCorruptStream is returned when the encoded command stream cannot be
	// decoded.
	ErrCorruptStream = errors.New("corrupt command stream")
	// ErrNotInitialized is returned by operations on a renderer that was
	// never initialized or has been deinitialized.
	ErrNotInitialized = errors.New("renderer not initialized")
	// ErrNoBackbuffer is returned when an operation needs a backbuffer and
	// no successful Resize has happened yet.
	ErrNoBackbuffer = errors.New("no backbuffer")
	// ErrSurfaceUnavailable is returned by surfaces that cannot accept a
	// blit right now. Presentation skips the frame.
	ErrSurfaceUnavailable = errors.New("surface unavailable")
)
