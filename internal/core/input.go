package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionLeft                // Left arrow, A - start moving left
	ActionRight               // Right arrow, D - start moving right
	ActionReleaseLeft         // Synthesized when the left key stops repeating
	ActionReleaseRight        // Synthesized when the right key stops repeating
	ActionStop                // Space, S, Down - stop the paddle
	ActionRestart             // R, Enter - play again after game over
	ActionPause               // P - pause/unpause
	ActionHelp                // ? - toggle the instructions panel
	ActionQuit                // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionReleaseLeft:
		return "ReleaseLeft"
	case ActionReleaseRight:
		return "ReleaseRight"
	case ActionStop:
		return "Stop"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered between two simulation ticks.
// Order is kept because a press followed by a release is not the same
// as a release followed by a press.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{}
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set records an action for this frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Actions returns the recorded actions in arrival order.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}
