package core

// EventKind identifies a discrete input event delivered by an input source.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventMoveLeftPressed
	EventMoveLeftReleased
	EventMoveRightPressed
	EventMoveRightReleased
	EventSetX // Absolute pointer/touch position in playfield units
)

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventMoveLeftPressed:
		return "move_left_pressed"
	case EventMoveLeftReleased:
		return "move_left_released"
	case EventMoveRightPressed:
		return "move_right_pressed"
	case EventMoveRightReleased:
		return "move_right_released"
	case EventSetX:
		return "set_absolute_x"
	default:
		return "none"
	}
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(name string) (EventKind, bool) {
	for k := EventMoveLeftPressed; k <= EventSetX; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return EventNone, false
}

// Event is one input event. X is only meaningful for EventSetX.
type Event struct {
	Kind EventKind
	X    float64
}

// Apply dispatches an event to the matching mutation entry point.
// Unknown kinds are ignored.
func (s *State) Apply(ev Event) {
	switch ev.Kind {
	case EventMoveLeftPressed:
		s.SetMoveLeft(true)
	case EventMoveLeftReleased:
		s.SetMoveLeft(false)
	case EventMoveRightPressed:
		s.SetMoveRight(true)
	case EventMoveRightReleased:
		s.SetMoveRight(false)
	case EventSetX:
		s.SetPlayerX(ev.X)
	}
}

// SetMoveLeft sets or clears the left movement intent.
func (s *State) SetMoveLeft(held bool) {
	s.player.MovingLeft = held
}

// SetMoveRight sets or clears the right movement intent.
func (s *State) SetMoveRight(held bool) {
	s.player.MovingRight = held
}

// SetPlayerX moves the player directly, as pointer and touch input do.
// Out-of-field values are accepted and clamped by the next AdvanceFrame.
func (s *State) SetPlayerX(x float64) {
	s.player.X = x
}
