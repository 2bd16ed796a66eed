// Package session ties a running game to its replay recording. Every
// frontend (terminal, SSH, window) plays through a Session.
package session

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/column-clearer/internal/config"
	"github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/registry"
	"github.com/vovakirdan/column-clearer/internal/replay"
	"github.com/vovakirdan/column-clearer/internal/storage"
)

// Options configures a game session.
type Options struct {
	Store   *storage.Store // nil disables replay recording
	Logger  *log.Logger    // nil discards output
	Session string         // "local" or the SSH user
	Config  config.ColumnsConfig
}

// Session ties one game to its replay recording. A restart closes the
// current recording and opens a new one. Step and Finish may be called
// from different goroutines (the SSH handler finishes on disconnect).
type Session struct {
	game     registry.Game
	opts     Options
	logger   *log.Logger
	cfgYAML  string
	mu       sync.Mutex
	recorder *replay.Recorder
	started  time.Time
}

// New wraps game. Nothing runs until Start.
func New(game registry.Game, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Session == "" {
		opts.Session = "local"
	}

	yaml, err := config.Dump(opts.Config)
	if err != nil {
		logger.Warn("replay will not carry its config", "err", err)
	}

	return &Session{
		game:    game,
		opts:    opts,
		logger:  logger,
		cfgYAML: string(yaml),
	}
}

// Start resets the game with cfg and begins a new recording.
func (s *Session) Start(cfg core.RuntimeConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.Reset(cfg); err != nil {
		return fmt.Errorf("session: start %s: %w", s.game.ID(), err)
	}

	s.recorder = replay.NewRecorder(replay.Header{
		GameID:     s.game.ID(),
		Seed:       cfg.Seed,
		ConfigName: s.opts.Config.Name,
		ConfigYAML: s.cfgYAML,
		Width:      s.opts.Config.Playfield.Width,
		Height:     s.opts.Config.Playfield.Height,
	})
	s.started = time.Now()

	s.logger.Info("session started",
		"game", s.game.ID(),
		"session", s.opts.Session,
		"seed", cfg.Seed,
		"config", s.opts.Config.Name,
	)
	return nil
}

// Step records the input and advances the game.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recorder != nil {
		s.recorder.RecordFrame(in)
	}
	return s.game.Step(in)
}

// Finish stops the current recording and saves it. Returns the stored
// replay ID, or 0 when nothing was saved. Safe to call more than once.
func (s *Session) Finish() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.recorder
	if rec == nil || !rec.IsRecording() {
		return 0
	}
	rec.Stop()

	kv := []any{
		"game", s.game.ID(),
		"session", s.opts.Session,
		"frames", rec.FrameCount(),
		"elapsed", time.Since(s.started).Round(time.Millisecond),
	}
	if in, ok := s.game.(registry.Inspector); ok {
		kv = append(kv, in.Inspect()...)
	}

	var id int64
	if s.opts.Store != nil && rec.FrameCount() > 0 {
		saved, err := s.opts.Store.SaveReplay(rec.Data(), s.opts.Session)
		if err != nil {
			s.logger.Error("could not save replay", "err", err)
		} else {
			id = saved
			kv = append(kv, "replay", id)
		}
	}

	s.logger.Info("session ended", kv...)
	return id
}

// Game returns the wrapped game.
func (s *Session) Game() registry.Game {
	return s.game
}
