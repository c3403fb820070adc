package core

// Action represents a semantic command, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - raise the virtual fingertip
	ActionDown           // S, Down arrow - lower the virtual fingertip
	ActionHide           // H - hide the virtual fingertip (no detection)
	ActionRestart        // R key - restart after game over
	ActionQuit           // Q, Ctrl+C - end the session
	ActionPause          // P, Escape - pause/unpause the loop
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionHide:
		return "Hide"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Sample is one poll of the landmark source.
// Y is the tracked landmark's vertical position as a fraction of the camera
// frame height, in [0,1]. OK is false when nothing was detected this frame.
type Sample struct {
	Y  float64
	OK bool
}

// Detected returns a sample carrying a tracked position.
func Detected(y float64) Sample {
	return Sample{Y: y, OK: true}
}

// NoDetection is the sample reported when no landmark was found.
var NoDetection = Sample{}

// InputFrame represents everything the game consumes during one tick:
// discrete actions plus at most one landmark sample.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Tracking is the landmark sample polled for this frame.
	Tracking Sample
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets actions and tracking for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Tracking = NoDetection
}
