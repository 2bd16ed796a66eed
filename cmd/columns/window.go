package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/games/columns"
	"github.com/vovakirdan/column-clearer/internal/platform/session"
	"github.com/vovakirdan/column-clearer/internal/platform/window"
)

var flagFollowSize bool

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window. One window pixel is one playfield
unit. With --follow-size the playfield takes the size of the window and
every resize is recorded, so replays stay exact.

Controls:
  Left/A      - Move left
  Right/D     - Move right
  Mouse/Touch - Place the shooter
  P/Esc       - Pause
  R           - Restart with a new seed
  Q           - Quit

Examples:
  columns window
  columns window --follow-size`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().BoolVar(&flagFollowSize, "follow-size", false, "Resize the playfield with the window (overrides playfield.follow_display)")
}

func runWindow(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("follow-size") {
		cfg.Playfield.FollowDisplay = flagFollowSize
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed

	return window.Run(columns.New(cfg, logger), rt, window.Options{
		Session: session.Options{
			Store:  store,
			Logger: logger,
			Config: cfg,
		},
		FollowDisplay: cfg.Playfield.FollowDisplay,
	})
}
