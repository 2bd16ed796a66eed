// Package window runs a game in a desktop window with ebiten. The logical
// screen is the playfield, so one pixel is one playfield unit.
package window

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/column-clearer/internal/core"
	colcore "github.com/vovakirdan/column-clearer/internal/games/columns/core"
	"github.com/vovakirdan/column-clearer/internal/platform/session"
	"github.com/vovakirdan/column-clearer/internal/registry"
)

// Viewable is a game the window can draw from a snapshot.
type Viewable interface {
	registry.Game
	Snapshot() colcore.Snapshot
}

// Options configures the window frontend.
type Options struct {
	Session       session.Options
	FollowDisplay bool // Resize the playfield with the window
	Title         string
}

// size is a logical screen size in pixels.
type size struct {
	w, h int
}

// Game implements ebiten.Game on top of a recorded session.
type Game struct {
	sess    *session.Session
	game    Viewable
	config  core.RuntimeConfig
	opts    Options
	device  Device
	input   *Input
	frame   core.InputFrame
	state   core.GameState
	screen  size  // Last size returned by Layout
	pending *size // Display size not yet sent to the game
	logger  *log.Logger
}

// New creates the window game and starts its session. cfg.Seed of 0
// picks a time-based seed.
func New(game Viewable, cfg core.RuntimeConfig, opts Options) (*Game, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Session.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sess := session.New(game, opts.Session)
	if err := sess.Start(cfg); err != nil {
		return nil, err
	}

	g := &Game{
		sess:   sess,
		game:   game,
		config: cfg,
		opts:   opts,
		device: &ebitenDevice{},
		input:  NewInput(DefaultKeyMap()),
		frame:  core.NewInputFrame(),
		state:  game.State(),
		logger: logger.WithPrefix("window"),
	}
	g.screen = g.fieldSize()
	return g, nil
}

// fieldSize returns the playfield rounded up to whole pixels.
func (g *Game) fieldSize() size {
	field := g.game.Snapshot().Playfield
	return size{
		w: max(int(math.Ceil(field.Width)), 1),
		h: max(int(math.Ceil(field.Height)), 1),
	}
}

// Update reads input and advances the session one tick.
func (g *Game) Update() error {
	g.input.Read(g.device, &g.frame)

	if g.frame.Has(core.ActionQuit) {
		g.sess.Finish()
		return ebiten.Termination
	}
	if g.frame.Has(core.ActionRestart) {
		return g.restart()
	}

	if g.pending != nil {
		g.frame.SetResize(float64(g.pending.w), float64(g.pending.h))
		g.pending = nil
	}

	g.state = g.sess.Step(g.frame).State
	g.frame.Clear()
	return nil
}

// restart saves the current recording and starts over with a new seed.
func (g *Game) restart() error {
	g.sess.Finish()

	g.config.Seed = time.Now().UnixNano()
	if err := g.sess.Start(g.config); err != nil {
		return fmt.Errorf("window: restart: %w", err)
	}

	g.frame.Clear()
	g.input.Resume(&g.frame)
	if g.opts.FollowDisplay && g.screen != g.fieldSize() {
		g.pending = &size{w: g.screen.w, h: g.screen.h}
	}
	g.state = g.game.State()
	return nil
}

// Layout returns the playfield as the logical screen. When following the
// display it adopts the window size and queues a resize for the game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !g.opts.FollowDisplay || outsideWidth <= 0 || outsideHeight <= 0 {
		g.screen = g.fieldSize()
		return g.screen.w, g.screen.h
	}

	next := size{w: outsideWidth, h: outsideHeight}
	if next != g.screen {
		g.logger.Debug("display resized", "width", next.w, "height", next.h)
		g.screen = next
		g.pending = &next
	}
	return g.screen.w, g.screen.h
}

// Run opens the window and blocks until it is closed. The session is
// saved on every exit path.
func Run(game Viewable, cfg core.RuntimeConfig, opts Options) error {
	g, err := New(game, cfg, opts)
	if err != nil {
		return err
	}
	defer g.sess.Finish()

	title := opts.Title
	if title == "" {
		title = game.Title()
	}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.screen.w, g.screen.h)
	ebiten.SetTPS(max(cfg.TickRate, 1))
	if opts.FollowDisplay {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
