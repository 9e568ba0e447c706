package timing

import "time"

// Limiter controls frame rate timing for the host loop.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after a stall.
	Reset()
}

// DefaultFPS is the target frame rate when none is configured.
const DefaultFPS = 60

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// FrameDuration returns the duration of a single frame at fps frames per
// second. Non-positive values fall back to DefaultFPS.
func FrameDuration(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
