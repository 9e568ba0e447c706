package action

// Action represents input actions that can be performed in the demo
type Action int

const (
	// Player movement
	PlayerUp Action = iota
	PlayerDown
	PlayerLeft
	PlayerRight

	// Host features
	HostQuit
	HostSnapshot
	HostAudioToggle

	// Window messages
	WindowResize
	WindowExpose

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions by how they are delivered
type Category int

const (
	// CategoryMovement actions are level triggered: held while pressed
	CategoryMovement Category = iota
	// CategoryHost actions are edge triggered and debounced
	CategoryHost
	// CategoryWindow actions come from the window system, not from keys
	CategoryWindow
	CategoryDebug
)

// Info describes an action
type Info struct {
	Category    Category
	Description string
}

var infos = map[Action]Info{
	PlayerUp:              {CategoryMovement, "player up"},
	PlayerDown:            {CategoryMovement, "player down"},
	PlayerLeft:            {CategoryMovement, "player left"},
	PlayerRight:           {CategoryMovement, "player right"},
	HostQuit:              {CategoryHost, "quit"},
	HostSnapshot:          {CategoryHost, "snapshot"},
	HostAudioToggle:       {CategoryHost, "toggle audio"},
	WindowResize:          {CategoryWindow, "window resized"},
	WindowExpose:          {CategoryWindow, "window exposed"},
	DebugLogLevelIncrease: {CategoryDebug, "more logs"},
	DebugLogLevelDecrease: {CategoryDebug, "fewer logs"},
}

// GetInfo returns the category and description of an action
func GetInfo(act Action) Info {
	if info, ok := infos[act]; ok {
		return info
	}
	return Info{Category: CategoryHost, Description: "unknown"}
}

func (a Action) String() string {
	return GetInfo(a).Description
}

// IsMovement reports whether the action moves the player
func (a Action) IsMovement() bool {
	return GetInfo(a).Category == CategoryMovement
}
