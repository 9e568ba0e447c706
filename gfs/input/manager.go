package input

import (
	"time"

	"github.com/valerio/go-gfs/gfs/input/action"
	"github.com/valerio/go-gfs/gfs/input/event"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// Manager handles input actions and their associated callbacks
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	dpad          *DPad
	now           func() time.Time
}

// NewManager creates a manager that writes movement actions to pad. pad may
// be nil, in which case movement actions go to callbacks like any other.
func NewManager(pad *DPad) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		dpad:          pad,
		now:           time.Now,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type. It reports whether the
// event was delivered, false meaning it was debounced or had no handler.
func (m *Manager) Trigger(act action.Action, evt event.Type) bool {
	// Movement is level triggered and written directly to the d-pad
	if m.dpad != nil {
		if dir, ok := DirectionOf(act); ok {
			switch evt {
			case event.Press, event.Hold:
				m.dpad.Press(dir)
			case event.Release:
				m.dpad.Release(dir)
			}
			return true
		}
	}

	if evt == event.Press || evt == event.Release {
		now := m.now()
		if m.lastTriggered[act] == nil {
			m.lastTriggered[act] = make(map[event.Type]time.Time)
		}
		if last, ok := m.lastTriggered[act][evt]; ok && now.Sub(last) < debounceDuration {
			return false
		}
		m.lastTriggered[act][evt] = now
	}

	callbacks := m.handlers[act][evt]
	for _, callback := range callbacks {
		callback()
	}
	return len(callbacks) > 0
}

// DPad returns the d-pad the manager writes movement to
func (m *Manager) DPad() *DPad {
	return m.dpad
}
