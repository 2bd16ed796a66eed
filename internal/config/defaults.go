package config

import (
	_ "embed"
)

//go:embed defaults/columns.yaml
var defaultColumnsYAML []byte

// DefaultColumnsConfig returns the default Column Clearer configuration.
func DefaultColumnsConfig() ColumnsConfig {
	return ColumnsConfig{
		Name: "classic",
		Playfield: PlayfieldConfig{
			Width:   500,
			Height:  800,
			Columns: 2,
		},
		Player: PlayerConfig{
			Size:     20,
			MoveStep: 5,
			FireRate: 20,
		},
		Projectiles: ProjectileConfig{
			Speed:      10,
			Size:       5, // player size / 4
			FanSpacing: 7,
		},
		Enemies: EnemyConfig{
			Size:      20 / 1.8,
			Speed:     1,
			SpawnProb: 0.05,
			Max:       50,
			HoverLine: 0.9,
		},
		Multipliers: []MultiplierConfig{
			{Y: 400, Fan: 3},
			{Y: 200, Fan: 2},
		},
		InitialEnemies: []EnemyPlacement{
			{X: 20, Y: 10, Size: 10},
		},
		Input: InputConfig{
			HoldTicks:   30, // Covers the usual 500ms keyboard repeat delay at 60 TPS
			RepeatTicks: 6,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultColumnsYAML
}
