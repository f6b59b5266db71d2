package core

// Action represents a semantic player action, abstracted from physical key presses.
// This allows the board logic to work with intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, K, Up arrow - move cursor up
	ActionDown             // S, J, Down arrow - move cursor down
	ActionLeft             // A, H, Left arrow - move cursor left
	ActionRight            // D, L, Right arrow - move cursor right
	ActionRotateCW         // X, ], Enter, Space - rotate clockwise
	ActionRotateCCW        // Z, [ - rotate counter-clockwise
	ActionRestart          // R key - restore the original layout
	ActionHelp             // ? - toggle help
	ActionQuit             // Q, Ctrl+C - exit
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
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action moves the cursor.
func (a Action) IsMove() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}

// Delta returns the (drow, dcol) cursor offset for a move action.
func (a Action) Delta() (drow, dcol int) {
	switch a {
	case ActionUp:
		return -1, 0
	case ActionDown:
		return 1, 0
	case ActionLeft:
		return 0, -1
	case ActionRight:
		return 0, 1
	default:
		return 0, 0
	}
}
