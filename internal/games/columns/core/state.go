package core

import (
	"errors"
	"fmt"
)

// Construction errors. New wraps one of these with the offending value.
var (
	ErrInvalidPlayfield = errors.New("columns: invalid playfield")
	ErrInvalidParams    = errors.New("columns: invalid parameters")
	ErrNilSource        = errors.New("columns: nil random source")
)

// State is the complete simulation state. It is owned by a single goroutine;
// input entry points and AdvanceFrame must be serialized by the caller.
type State struct {
	params      Params
	field       Playfield
	player      Player
	projectiles []Projectile
	enemies     []Enemy
	multipliers []Multiplier
	rng         Source
	tick        uint64
	stats       Stats
}

// New validates params and builds a fresh simulation. The player starts
// centered on the player line with no movement intent and a zero fire
// counter.
func New(p Params, rng Source) (*State, error) {
	if rng == nil {
		return nil, ErrNilSource
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &State{
		params:      p,
		field:       p.Playfield,
		projectiles: make([]Projectile, 0, 64),
		enemies:     make([]Enemy, 0, p.MaxEnemies),
		multipliers: append([]Multiplier(nil), p.Multipliers...),
		rng:         rng,
	}
	s.player = Player{
		Body: Body{
			X:    p.Playfield.Width / 2,
			Y:    p.Playfield.Height * PlayerLine,
			Size: p.PlayerSize,
		},
	}

	for _, b := range p.InitialEnemies {
		if len(s.enemies) >= p.MaxEnemies {
			break
		}
		s.enemies = append(s.enemies, Enemy{Body: b})
	}

	return s, nil
}

// Validate reports the first misconfiguration in p.
func (p Params) Validate() error {
	if err := validatePlayfield(p.Playfield.Width, p.Playfield.Height); err != nil {
		return err
	}
	if p.Playfield.Columns < 0 {
		return fmt.Errorf("%w: columns %d", ErrInvalidPlayfield, p.Playfield.Columns)
	}
	if p.PlayerSize <= 0 {
		return fmt.Errorf("%w: player size %v", ErrInvalidParams, p.PlayerSize)
	}
	if p.Playfield.Width < p.PlayerSize {
		return fmt.Errorf("%w: width %v narrower than player %v", ErrInvalidPlayfield, p.Playfield.Width, p.PlayerSize)
	}
	if p.PlayerMoveStep < 0 {
		return fmt.Errorf("%w: move step %v", ErrInvalidParams, p.PlayerMoveStep)
	}
	if p.FireRate < 1 {
		return fmt.Errorf("%w: fire rate %d", ErrInvalidParams, p.FireRate)
	}
	if p.BulletSpeed <= 0 {
		return fmt.Errorf("%w: bullet speed %v", ErrInvalidParams, p.BulletSpeed)
	}
	if p.BulletSize < 0 || p.EnemySize < 0 {
		return fmt.Errorf("%w: negative entity size", ErrInvalidParams)
	}
	if p.EnemyMoveSpeed < 0 {
		return fmt.Errorf("%w: enemy speed %v", ErrInvalidParams, p.EnemyMoveSpeed)
	}
	if p.EnemySpawnProb < 0 || p.EnemySpawnProb > 1 {
		return fmt.Errorf("%w: spawn probability %v", ErrInvalidParams, p.EnemySpawnProb)
	}
	if p.MaxEnemies < 0 {
		return fmt.Errorf("%w: max enemies %d", ErrInvalidParams, p.MaxEnemies)
	}
	if p.HoverLine <= 0 || p.HoverLine > 1 {
		return fmt.Errorf("%w: hover line %v", ErrInvalidParams, p.HoverLine)
	}
	for i, m := range p.Multipliers {
		if m.FanCount < 0 {
			return fmt.Errorf("%w: multiplier %d fan count %d", ErrInvalidParams, i, m.FanCount)
		}
	}
	return nil
}

func validatePlayfield(w, h float64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidPlayfield, w, h)
	}
	return nil
}

// Resize changes the playfield bounds and re-anchors the player to the
// player line. The player's x is corrected by the next AdvanceFrame.
func (s *State) Resize(width, height float64) error {
	if err := validatePlayfield(width, height); err != nil {
		return err
	}
	if width < s.player.Size {
		return fmt.Errorf("%w: width %v narrower than player %v", ErrInvalidPlayfield, width, s.player.Size)
	}
	s.field.Width = width
	s.field.Height = height
	s.player.Y = height * PlayerLine
	return nil
}

// Playfield returns the current bounds.
func (s *State) Playfield() Playfield {
	return s.field
}

// Player returns a copy of the player.
func (s *State) Player() Player {
	return s.player
}

// Projectiles returns the live projectile slice. Callers must not modify it.
func (s *State) Projectiles() []Projectile {
	return s.projectiles
}

// Enemies returns the live enemy slice. Callers must not modify it.
func (s *State) Enemies() []Enemy {
	return s.enemies
}

// Multipliers returns the multiplier lines.
func (s *State) Multipliers() []Multiplier {
	return s.multipliers
}

// Tick returns the number of frames advanced so far.
func (s *State) Tick() uint64 {
	return s.tick
}

// Stats returns event counters since construction.
func (s *State) Stats() Stats {
	return s.stats
}
