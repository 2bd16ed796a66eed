package tui

import "github.com/vovakirdan/column-clearer/internal/core"

// Direction is a horizontal movement key.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
)

// press and release actions per direction.
var (
	pressAction   = [2]core.Action{core.ActionLeftPress, core.ActionRightPress}
	releaseAction = [2]core.Action{core.ActionLeftRelease, core.ActionRightRelease}
)

type holdState struct {
	held     bool
	repeated bool   // Autorepeat seen since the press
	lastSeen uint64 // Tick of the last press or repeat
}

// HoldTracker turns terminal key presses into press/release pairs.
// Terminals deliver a key press and then autorepeats, never a release, so a
// direction is released when no repeat arrives in time or the opposite
// direction is pressed. The first repeat comes after the keyboard's repeat
// delay, so the wait before it (holdTicks) is longer than between repeats.
type HoldTracker struct {
	holdTicks   uint64
	repeatTicks uint64
	now         uint64
	keys        [2]holdState
}

// NewHoldTracker creates a tracker. Non-positive values fall back to one tick.
func NewHoldTracker(holdTicks, repeatTicks int) *HoldTracker {
	return &HoldTracker{
		holdTicks:   uint64(max(holdTicks, 1)),
		repeatTicks: uint64(max(repeatTicks, 1)),
	}
}

// Press records a key press or autorepeat for d, appending any resulting
// actions to frame.
func (h *HoldTracker) Press(d Direction, frame *core.InputFrame) {
	other := 1 - d
	if h.keys[other].held {
		h.keys[other] = holdState{}
		frame.Set(releaseAction[other])
	}

	k := &h.keys[d]
	if k.held {
		k.repeated = true
		k.lastSeen = h.now
		return
	}
	*k = holdState{held: true, lastSeen: h.now}
	frame.Set(pressAction[d])
}

// Tick releases directions whose hold expired and advances the clock.
// Call once per simulation tick, before the frame is stepped.
func (h *HoldTracker) Tick(frame *core.InputFrame) {
	for d := range h.keys {
		k := &h.keys[d]
		if !k.held {
			continue
		}
		limit := h.holdTicks
		if k.repeated {
			limit = h.repeatTicks
		}
		if h.now-k.lastSeen >= limit {
			*k = holdState{}
			frame.Set(releaseAction[d])
		}
	}
	h.now++
}

// ReleaseAll releases every held direction.
func (h *HoldTracker) ReleaseAll(frame *core.InputFrame) {
	for d := range h.keys {
		if h.keys[d].held {
			h.keys[d] = holdState{}
			frame.Set(releaseAction[d])
		}
	}
}

// Held reports whether d is currently held.
func (h *HoldTracker) Held(d Direction) bool {
	return h.keys[d].held
}
