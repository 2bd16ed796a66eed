package core

import "math"

// AdvanceFrame runs one fixed tick. The steps run in a fixed order and each
// step sees the positions produced by the previous one:
//
//  1. Move the player by its held directions and clamp to the field
//  2. Count toward the next shot and fire when the cadence is reached
//  3. Move projectiles up; those reaching the top edge expire
//  4. Split projectiles crossing a multiplier line into a fan
//  5. Move enemies down to the hover line and resolve collisions
//  6. Maybe spawn one enemy
//  7. Prune expired projectiles and destroyed enemies
//
// AdvanceFrame never fails and never blocks.
func (s *State) AdvanceFrame() {
	s.movePlayer()
	s.updateFireCadence()
	s.advanceProjectiles()

	// Children spawned by multipliers join after the pass and are only
	// evaluated starting next frame.
	checked := len(s.projectiles)
	s.splitAtMultipliers(checked)
	s.advanceEnemies(checked)

	s.spawnEnemy()
	s.prune()
	s.tick++
}

func (s *State) movePlayer() {
	p := &s.player
	if p.MovingLeft {
		p.X -= s.params.PlayerMoveStep
	}
	if p.MovingRight {
		p.X += s.params.PlayerMoveStep
	}
	s.clampPlayer()
}

// clampPlayer keeps the whole player square inside the field.
func (s *State) clampPlayer() {
	half := s.player.Size / 2
	s.player.X = math.Max(half, math.Min(s.field.Width-half, s.player.X))
}

func (s *State) updateFireCadence() {
	s.player.FireCounter++
	if s.player.FireCounter >= s.params.FireRate {
		s.fire()
		s.player.FireCounter = 0
	}
}

// fire spawns a projectile at the top edge of the player.
func (s *State) fire() {
	s.projectiles = append(s.projectiles, Projectile{
		Body: Body{
			X:    s.player.X,
			Y:    s.player.Y - s.player.Size/2,
			Size: s.params.BulletSize,
		},
	})
	s.stats.Fired++
}

func (s *State) advanceProjectiles() {
	for i := range s.projectiles {
		b := &s.projectiles[i]
		b.Y -= s.params.BulletSpeed
		if b.Y <= 0 {
			b.Expired = true
		}
	}
}

// splitAtMultipliers checks the first n projectiles against every
// multiplier line. A projectile in the left half that is at most one tick of
// travel above a line has just crossed it: it expires and is replaced by
// FanCount children centered on its x.
func (s *State) splitAtMultipliers(n int) {
	half := s.field.Width / 2
	for _, m := range s.multipliers {
		for i := 0; i < n; i++ {
			b := &s.projectiles[i]
			if b.Expired || b.X >= half {
				continue
			}
			gap := m.Y - b.Y
			if gap < 0 || gap >= s.params.BulletSpeed {
				continue
			}

			b.Expired = true
			s.stats.Split++
			x, y := b.X, b.Y
			for k := 0; k < m.FanCount; k++ {
				// b may be invalidated by append; x and y were copied above.
				s.projectiles = append(s.projectiles, Projectile{
					Body: Body{
						X:    x + FanOffset(k, m.FanCount, s.params.FanSpacing),
						Y:    y,
						Size: s.params.BulletSize,
					},
				})
				s.stats.Children++
			}
		}
	}
}

// FanOffset returns the x offset of child i out of count, spaced by spacing:
// (i - count/2) * spacing.
func FanOffset(i, count int, spacing float64) float64 {
	return (float64(i) - float64(count)/2) * spacing
}

// advanceEnemies moves every enemy toward the hover line and tests it
// against the first n projectiles. A hit needs horizontal overlap and the
// projectile already above the enemy. A projectile is not consumed by its
// first hit, so it can destroy every enemy it has passed in one frame.
func (s *State) advanceEnemies(n int) {
	hover := s.field.Height * s.params.HoverLine
	for i := range s.enemies {
		e := &s.enemies[i]
		e.Y += s.params.EnemyMoveSpeed
		if e.Y >= hover {
			e.Y = hover
		}

		for j := 0; j < n; j++ {
			b := &s.projectiles[j]
			if math.Abs(e.X-b.X) >= (e.Size+b.Size)/2 {
				continue
			}
			if e.Y > b.Y {
				if !e.Destroyed {
					s.stats.Destroyed++
				}
				e.Destroyed = true
				b.Expired = true
			}
		}
	}
}

// prune drops dead entities in place, keeping insertion order.
func (s *State) prune() {
	live := s.projectiles[:0]
	for _, b := range s.projectiles {
		if !b.Expired {
			live = append(live, b)
		}
	}
	s.stats.Expired += len(s.projectiles) - len(live)
	clear(s.projectiles[len(live):])
	s.projectiles = live
	if len(live) > s.stats.PeakBullet {
		s.stats.PeakBullet = len(live)
	}

	alive := s.enemies[:0]
	for _, e := range s.enemies {
		if !e.Destroyed {
			alive = append(alive, e)
		}
	}
	clear(s.enemies[len(alive):])
	s.enemies = alive
}
