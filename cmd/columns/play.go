package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/column-clearer/internal/games/columns"
	"github.com/vovakirdan/column-clearer/internal/platform/session"
	"github.com/vovakirdan/column-clearer/internal/platform/tui"
	"github.com/vovakirdan/column-clearer/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal. The session is recorded and saved to
the replay database when it ends.

Controls:
  Left/H/A    - Move left
  Right/L/D   - Move right
  Mouse       - Click or drag to place the shooter
  P/Esc       - Pause
  R           - Restart with a new seed
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Examples:
  columns play
  columns play --seed 42
  columns play --config ./hard.yaml --fps 30`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	game, err := registry.Create(columns.ID, registry.Options{Config: cfg, Logger: logger})
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	return tui.Run(game, runtimeConfig(), session.Options{
		Store:  store,
		Logger: logger,
		Config: cfg,
	})
}
