package core

// Source supplies uniform samples in [0, 1). *math/rand.Rand satisfies it;
// tests substitute fixed sequences.
type Source interface {
	Float64() float64
}

// spawnEnemy draws one sample while the field is below the enemy cap and
// spawns an enemy above the top edge when it falls under the spawn
// probability. Spawn x lands in the middle 80% of the left half.
func (s *State) spawnEnemy() {
	if s.liveEnemies() >= s.params.MaxEnemies {
		return
	}
	if s.rng.Float64() >= s.params.EnemySpawnProb {
		return
	}

	x := (s.rng.Float64()*0.8 + 0.1) * s.field.Width / 2
	s.enemies = append(s.enemies, Enemy{
		Body: Body{X: x, Y: EnemySpawnY, Size: s.params.EnemySize},
	})
	s.stats.Spawned++
}

// liveEnemies counts enemies not destroyed this frame.
func (s *State) liveEnemies() int {
	n := 0
	for _, e := range s.enemies {
		if !e.Destroyed {
			n++
		}
	}
	return n
}
