// columns runs Column Clearer, a fixed-tick arcade shooter, in the
// terminal, in a desktop window or over SSH, and records every session
// as a replay.
//
// Usage:
//
//	columns play             - Play in the terminal
//	columns window           - Play in a desktop window
//	columns serve            - Start SSH server for remote play
//	columns replays          - Browse recorded sessions
//	columns replay <id>      - Watch or re-simulate one replay
//	columns config           - Print the effective configuration
//	columns list             - List available games
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set replay database path (default: ~/.columns/replays.db)
//	--config <path>      - Load gameplay config from a YAML file
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/column-clearer/internal/config"
	"github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/games/columns"
	"github.com/vovakirdan/column-clearer/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "columns",
	Short: "Column Clearer - a fixed-tick arcade shooter",
	Long: `Column Clearer moves a shooter along the bottom of the field while
enemies drift down from the top. Shots that cross a multiplier line split
into a fan.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  replays  - Browse recorded sessions
  replay   - Watch or re-simulate a replay
  config   - Print the effective configuration

Examples:
  columns play
  columns play --seed 42
  columns window --follow-size
  columns serve --ssh :2222
  columns replay 12 --headless`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.columns/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (full-screen commands default to ~/.columns/columns.log)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger. Full-screen commands always log to
// a file so output does not tear the terminal UI. The returned func closes
// the file.
func newLogger(fullScreen bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)

	path := flagLogFile
	if path == "" && fullScreen {
		path = filepath.Join(config.DataDir(), "columns.log")
	}
	if path != "" {
		path = expandHome(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "columns",
		Level:           level,
	})
	return logger, closeFn, nil
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// loadConfig loads and validates the gameplay config.
func loadConfig() (config.ColumnsConfig, error) {
	cfg, err := config.LoadColumns(flagConfig)
	if err != nil {
		return config.ColumnsConfig{}, err
	}
	if err := columns.Validate(cfg); err != nil {
		return config.ColumnsConfig{}, err
	}
	return cfg, nil
}

// openStore opens the replay database. Failure only disables recording.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database, sessions will not be recorded", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// runtimeConfig builds the runtime config for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
