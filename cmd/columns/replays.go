package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/column-clearer/internal/config"
	"github.com/vovakirdan/column-clearer/internal/games/columns"
	"github.com/vovakirdan/column-clearer/internal/platform/tui"
	"github.com/vovakirdan/column-clearer/internal/replay"
	"github.com/vovakirdan/column-clearer/internal/storage"
)

var (
	flagHeadless bool
	flagExport   string
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded sessions",
	Long: `List recorded sessions, newest first. Press enter to watch one,
d to delete it, q to quit.`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch or re-simulate a replay",
	Long: `Play a recorded session back in the terminal.

With --headless the session is re-simulated without rendering and the final
counters are printed. With --export the recording is written as JSON.

Controls while watching:
  Space/P     - Pause
  +/Right     - Faster
  -/Left      - Slower
  R           - Rewind
  Q/Esc       - Quit

Examples:
  columns replay 12
  columns replay 12 --headless
  columns replay 12 --export session.json
  columns replay 12 --export -`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Re-simulate without rendering and print the final counters")
	replayCmd.Flags().StringVar(&flagExport, "export", "", "Write the recording as JSON to a file (- for stdout)")
}

func runReplays(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening replay database: %w", err)
	}
	defer store.Close()

	// Back to the list after each playback until the user quits
	for {
		rt := runtimeConfig()
		id, err := tui.RunReplayBrowser(store, columns.ID, rt.TickRate, rt.ScreenW, rt.ScreenH)
		if err != nil {
			return err
		}
		if id == 0 {
			return nil
		}

		data, err := store.LoadReplay(id)
		if err != nil {
			return err
		}
		if err := watch(data, logger); err != nil {
			return err
		}
	}
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid replay id %q", args[0])
	}

	// Export and headless output goes to stdout, so logs stay on stderr
	logger, closeLog, err := newLogger(!flagHeadless && flagExport == "")
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening replay database: %w", err)
	}
	defer store.Close()

	data, err := store.LoadReplay(id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no replay with id %d", id)
	}
	if err != nil {
		return err
	}

	switch {
	case flagExport != "":
		return export(data, flagExport)
	case flagHeadless:
		return simulate(data, logger, os.Stdout)
	default:
		return watch(data, logger)
	}
}

// replayConfig returns the gameplay config a replay was recorded with,
// falling back to the current config for recordings that carry none.
func replayConfig(data *replay.Data, logger *log.Logger) (config.ColumnsConfig, error) {
	if data.ConfigYAML == "" {
		logger.Warn("replay has no config, using the current one", "replay", data.ID)
		return loadConfig()
	}
	cfg, err := config.Parse([]byte(data.ConfigYAML))
	if err != nil {
		return config.ColumnsConfig{}, fmt.Errorf("replay %d config: %w", data.ID, err)
	}
	return cfg, nil
}

func watch(data *replay.Data, logger *log.Logger) error {
	cfg, err := replayConfig(data, logger)
	if err != nil {
		return err
	}
	return tui.RunPlayback(columns.New(cfg, logger), *data, runtimeConfig(), logger)
}

func simulate(data *replay.Data, logger *log.Logger, out io.Writer) error {
	cfg, err := replayConfig(data, logger)
	if err != nil {
		return err
	}

	game := columns.New(cfg, logger)
	state, err := replay.Simulate(game, *data, runtimeConfig())
	if err != nil {
		return err
	}

	kv := game.Inspect()
	logger.Info("replay simulated", append([]any{"replay", data.ID, "seed", data.Seed}, kv...)...)

	fmt.Fprintf(out, "replay #%d  seed %d  config %s  session length %s\n",
		data.ID, data.Seed, data.ConfigName, data.Duration(flagFPS))
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(out, "  %-18v %v\n", kv[i], kv[i+1])
	}
	if state.Paused {
		fmt.Fprintln(out, "  (ended paused)")
	}
	return nil
}

func export(data *replay.Data, path string) error {
	if path == "-" {
		return data.Encode(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := data.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
