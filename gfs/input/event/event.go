package event

// Type represents the type of input event
type Type int

const (
	Press   Type = iota // Button pressed down (debounced for host actions)
	Release             // Button released (debounced for host actions)
	Hold                // Continuous while pressed (not debounced)
)

func (t Type) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	case Hold:
		return "hold"
	default:
		return "unknown"
	}
}
