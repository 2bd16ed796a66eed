package core

// Action represents a semantic input action, abstracted from physical keys,
// pointers and touches.
type Action int

const (
	ActionNone         Action = iota
	ActionLeftPress           // Left arrow, h, a - start moving left
	ActionLeftRelease         // Left key released (or released by timeout on terminals)
	ActionRightPress          // Right arrow, l, d - start moving right
	ActionRightRelease        // Right key released
	ActionPointer             // Mouse or touch at an absolute playfield x
	ActionResize              // Playfield follows the display (X = width, Y = height)
	ActionPause               // P - pause/unpause ticks
	ActionRestart             // R - restart with a fresh seed
	ActionQuit                // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeftPress:
		return "LeftPress"
	case ActionLeftRelease:
		return "LeftRelease"
	case ActionRightPress:
		return "RightPress"
	case ActionRightRelease:
		return "RightRelease"
	case ActionPointer:
		return "Pointer"
	case ActionResize:
		return "Resize"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputEvent is one action in the order it happened. X carries the
// playfield position for ActionPointer; X and Y carry the new size for
// ActionResize.
type InputEvent struct {
	Action Action
	X      float64
	Y      float64
}

// InputFrame collects the input delivered between two simulation ticks.
// Order matters (press then release is not release then press), so events
// are kept as a sequence rather than a set.
type InputFrame struct {
	Events []InputEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Events: make([]InputEvent, 0, 4)}
}

// Set appends an action without a position.
func (f *InputFrame) Set(a Action) {
	f.Events = append(f.Events, InputEvent{Action: a})
}

// SetPointer appends an absolute pointer position.
func (f *InputFrame) SetPointer(x float64) {
	f.Events = append(f.Events, InputEvent{Action: ActionPointer, X: x})
}

// SetResize appends a playfield resize.
func (f *InputFrame) SetResize(w, h float64) {
	f.Events = append(f.Events, InputEvent{Action: ActionResize, X: w, Y: h})
}

// Has returns true if the given action occurred this frame.
func (f InputFrame) Has(a Action) bool {
	for _, ev := range f.Events {
		if ev.Action == a {
			return true
		}
	}
	return false
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Events) == 0
}

// Clear resets the frame for the next tick, keeping its capacity.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Events: make([]InputEvent, len(f.Events))}
	copy(clone.Events, f.Events)
	return clone
}
