// Package config provides YAML-based configuration loading for the
// Column Clearer playfield and its frontends.
package config

// ColumnsConfig contains all tunables for a Column Clearer session.
type ColumnsConfig struct {
	Name           string             `yaml:"name"`
	Playfield      PlayfieldConfig    `yaml:"playfield"`
	Player         PlayerConfig       `yaml:"player"`
	Projectiles    ProjectileConfig   `yaml:"projectiles"`
	Enemies        EnemyConfig        `yaml:"enemies"`
	Multipliers    []MultiplierConfig `yaml:"multipliers"`
	InitialEnemies []EnemyPlacement   `yaml:"initial_enemies"`
	Input          InputConfig        `yaml:"input"`
}

// PlayfieldConfig defines the simulation bounds in playfield units.
type PlayfieldConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Columns int     `yaml:"columns"` // Render-only grid columns
	// FollowDisplay resizes the playfield to the window instead of scaling.
	FollowDisplay bool `yaml:"follow_display"`
}

// PlayerConfig defines the controllable unit.
type PlayerConfig struct {
	Size     float64 `yaml:"size"`
	MoveStep float64 `yaml:"move_step"`
	FireRate int     `yaml:"fire_rate"` // Ticks between shots
}

// ProjectileConfig defines projectile motion and fan spread.
type ProjectileConfig struct {
	Speed      float64 `yaml:"speed"`
	Size       float64 `yaml:"size"`
	FanSpacing float64 `yaml:"fan_spacing"`
}

// EnemyConfig defines enemy spawning and motion.
type EnemyConfig struct {
	Size      float64 `yaml:"size"`
	Speed     float64 `yaml:"speed"`
	SpawnProb float64 `yaml:"spawn_prob"`
	Max       int     `yaml:"max"`
	HoverLine float64 `yaml:"hover_line"` // Fraction of height enemies stop at
}

// MultiplierConfig places one multiplier line.
type MultiplierConfig struct {
	Y   float64 `yaml:"y"`
	Fan int     `yaml:"fan"`
}

// EnemyPlacement is an enemy present at the first frame.
type EnemyPlacement struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Size float64 `yaml:"size"`
}

// InputConfig tunes the input sources.
type InputConfig struct {
	// HoldTicks is how long a terminal key counts as held after the first
	// press. Terminals report repeats, never releases.
	HoldTicks int `yaml:"hold_ticks"`
	// RepeatTicks is how long it counts as held after an autorepeat.
	RepeatTicks int `yaml:"repeat_ticks"`
}
