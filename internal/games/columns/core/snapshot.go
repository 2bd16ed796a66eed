package core

// MultiplierView is the renderer's view of a multiplier line.
type MultiplierView struct {
	Y        float64
	FanCount int
}

// Snapshot is a read-only copy of everything a renderer may draw. It shares
// no memory with the State, so it can be handed to another goroutine.
type Snapshot struct {
	Tick        uint64
	Player      Body
	Projectiles []Body
	Enemies     []Body
	Multipliers []MultiplierView
	Playfield   Playfield
}

// Snapshot copies the current state for rendering.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.tick,
		Player:      s.player.Body,
		Projectiles: make([]Body, len(s.projectiles)),
		Enemies:     make([]Body, len(s.enemies)),
		Multipliers: make([]MultiplierView, len(s.multipliers)),
		Playfield:   s.field,
	}
	for i, b := range s.projectiles {
		snap.Projectiles[i] = b.Body
	}
	for i, e := range s.enemies {
		snap.Enemies[i] = e.Body
	}
	for i, m := range s.multipliers {
		snap.Multipliers[i] = MultiplierView(m)
	}
	return snap
}
