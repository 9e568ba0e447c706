package input

import "github.com/valerio/go-gfs/gfs/input/action"

// DefaultKeyMap provides default key mappings that work across backends.
// Backends translate their key codes to these names.
var DefaultKeyMap = map[string]action.Action{
	"Up":    action.PlayerUp,
	"Down":  action.PlayerDown,
	"Left":  action.PlayerLeft,
	"Right": action.PlayerRight,

	"F12":    action.HostSnapshot,
	"s":      action.HostSnapshot,
	"m":      action.HostAudioToggle,
	"Escape": action.HostQuit,
	"q":      action.HostQuit,

	"+": action.DebugLogLevelIncrease,
	"=": action.DebugLogLevelIncrease, // without shift
	"-": action.DebugLogLevelDecrease,
	"_": action.DebugLogLevelDecrease,
}

// GetDefaultMapping returns the default action for a key, if one exists
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
