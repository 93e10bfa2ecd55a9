package core

// Action is a player intent for a single simulation frame, abstracted from
// physical keys, touches or buttons.
type Action uint16

// Actions are bit flags so several can be set in one frame.
const (
	ActionNone  Action = 0
	ActionJump  Action = 1 << 0 // Space, Up, W
	ActionDuck  Action = 1 << 1 // Down, S
	ActionStand Action = 1 << 2 // release of duck
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionDuck:
		return "Duck"
	case ActionStand:
		return "Stand"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation frame.
// It is a plain bitmask so frames can be recorded and replayed verbatim.
type InputFrame struct {
	Bits Action
}

// NewInputFrame creates an input frame with the given actions set.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	f.Bits |= a
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a != ActionNone && f.Bits&a == a
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Bits = ActionNone
}
