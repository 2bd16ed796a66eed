// Package core provides the simulation core for the Column Clearer shooter.
// This package is UI-agnostic and deterministic for a given random source
// and input sequence.
package core

// Default tuning values. Params built from DefaultParams use these; the YAML
// config can override every one of them.
const (
	PlayerMoveStep = 5.0  // Horizontal distance per tick while a direction is held
	PlayerSize     = 20.0 // Side of the player square
	BulletSpeed    = 10.0 // Upward distance per tick
	FireRate       = 20   // Ticks between shots
	MaxEnemies     = 50
	EnemySpawnProb = 0.05 // Chance per tick of spawning while below MaxEnemies
	EnemyMoveSpeed = 1.0  // Downward distance per tick
	FanSpacing     = 7.0  // Horizontal gap between multiplier children

	// EnemySpawnY places new enemies just above the visible field.
	EnemySpawnY = -5.0
	// HoverLine is the fraction of the playfield height enemies stop at.
	HoverLine = 0.9
	// PlayerLine is the fraction of the playfield height the player sits on.
	PlayerLine = 5.0 / 6.0

	DefaultWidth   = 500.0
	DefaultHeight  = 800.0
	DefaultColumns = 2
)

// Body is the geometric part shared by every entity.
type Body struct {
	X, Y float64 // Center position
	Size float64 // Diameter (or side for the player)
}

// Player is the single controllable unit at the bottom of the field.
type Player struct {
	Body
	MovingLeft  bool
	MovingRight bool
	FireCounter int // Ticks since last shot
}

// Projectile travels upward until it leaves the field, hits an enemy or is
// split by a multiplier.
type Projectile struct {
	Body
	Expired bool
}

// Enemy drifts downward until it reaches the hover line.
type Enemy struct {
	Body
	Destroyed bool
}

// Multiplier is a horizontal trigger line that fans crossing projectiles.
type Multiplier struct {
	Y        float64
	FanCount int
}

// Playfield holds the simulation bounds. Columns only affects rendering.
type Playfield struct {
	Width   float64
	Height  float64
	Columns int
}

// Params configures a simulation instance.
type Params struct {
	Playfield Playfield

	PlayerSize     float64
	PlayerMoveStep float64
	FireRate       int

	BulletSpeed    float64
	BulletSize     float64
	FanSpacing     float64
	EnemySize      float64
	EnemyMoveSpeed float64
	EnemySpawnProb float64
	MaxEnemies     int
	HoverLine      float64 // Fraction of height, 0 < HoverLine <= 1

	Multipliers    []Multiplier
	InitialEnemies []Body
}

// DefaultParams returns the stock layout: a 500x800 field with two
// multiplier lines and one enemy already on screen.
func DefaultParams() Params {
	return Params{
		Playfield: Playfield{
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			Columns: DefaultColumns,
		},
		PlayerSize:     PlayerSize,
		PlayerMoveStep: PlayerMoveStep,
		FireRate:       FireRate,
		BulletSpeed:    BulletSpeed,
		BulletSize:     PlayerSize / 4,
		FanSpacing:     FanSpacing,
		EnemySize:      PlayerSize / 1.8,
		EnemyMoveSpeed: EnemyMoveSpeed,
		EnemySpawnProb: EnemySpawnProb,
		MaxEnemies:     MaxEnemies,
		HoverLine:      HoverLine,
		Multipliers: []Multiplier{
			{Y: DefaultHeight * 0.5, FanCount: 3},
			{Y: DefaultHeight * 0.25, FanCount: 2},
		},
		InitialEnemies: []Body{
			{X: 20, Y: 10, Size: PlayerSize / 2},
		},
	}
}

// Stats counts simulation events since construction. They are diagnostics
// for logs and replay verification.
type Stats struct {
	Fired      int // Projectiles spawned by the player
	Split      int // Projectiles consumed by multiplier lines
	Children   int // Projectiles spawned by multiplier lines
	Spawned    int // Enemies spawned by the spawn policy
	Destroyed  int // Enemies destroyed by projectiles
	Expired    int // Projectiles pruned for any reason
	PeakBullet int // Largest live projectile count seen after pruning
}
