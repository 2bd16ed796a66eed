// Package columns adapts the Column Clearer simulation to the platform's
// Game interface. It owns the random source, maps platform actions to
// simulation events and draws the playfield into a character screen.
package columns

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/column-clearer/internal/config"
	platformcore "github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/games/columns/core"
	"github.com/vovakirdan/column-clearer/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "columns"

// Game implements registry.Game on top of core.State.
type Game struct {
	cfg     config.ColumnsConfig
	sim     *core.State
	runtime platformcore.RuntimeConfig
	paused  bool
	logger  *log.Logger
}

func init() {
	registry.Register(ID, func(opts registry.Options) registry.Game {
		return New(opts.Config, opts.Logger)
	})
}

// New creates a game for the given configuration. The simulation is built
// by Reset. A nil logger discards output.
func New(cfg config.ColumnsConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		cfg:    cfg,
		logger: logger.WithPrefix(ID),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Column Clearer"
}

// Reset builds a fresh simulation seeded from cfg.Seed.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) error {
	params := ParamsFromConfig(g.cfg)
	sim, err := core.New(params, rand.New(rand.NewSource(cfg.Seed))) //nolint:gosec // gameplay RNG
	if err != nil {
		return fmt.Errorf("columns: config %q: %w", g.cfg.Name, err)
	}

	g.sim = sim
	g.runtime = cfg
	g.paused = false

	g.logger.Debug("reset",
		"seed", cfg.Seed,
		"config", g.cfg.Name,
		"width", params.Playfield.Width,
		"height", params.Playfield.Height,
		"multipliers", len(params.Multipliers),
	)
	return nil
}

// Step applies this tick's input and advances one frame unless paused.
// Movement intents are applied even while paused so a key released during
// the pause does not stick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.sim == nil {
		return platformcore.StepResult{State: g.State()}
	}

	for _, ev := range in.Events {
		g.apply(ev)
	}

	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.sim.AdvanceFrame()
	return platformcore.StepResult{State: g.State(), Advanced: true}
}

// apply dispatches one platform event.
func (g *Game) apply(ev platformcore.InputEvent) {
	switch ev.Action {
	case platformcore.ActionLeftPress:
		g.sim.Apply(core.Event{Kind: core.EventMoveLeftPressed})
	case platformcore.ActionLeftRelease:
		g.sim.Apply(core.Event{Kind: core.EventMoveLeftReleased})
	case platformcore.ActionRightPress:
		g.sim.Apply(core.Event{Kind: core.EventMoveRightPressed})
	case platformcore.ActionRightRelease:
		g.sim.Apply(core.Event{Kind: core.EventMoveRightReleased})
	case platformcore.ActionPointer:
		g.sim.Apply(core.Event{Kind: core.EventSetX, X: ev.X})
	case platformcore.ActionResize:
		if err := g.sim.Resize(ev.X, ev.Y); err != nil {
			g.logger.Warn("resize rejected", "width", ev.X, "height", ev.Y, "err", err)
			return
		}
		g.logger.Debug("resize", "width", ev.X, "height", ev.Y)
	case platformcore.ActionPause:
		g.paused = !g.paused
	}
}

// State returns the current host-visible state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{Paused: g.paused}
	if g.sim != nil {
		st.Tick = g.sim.Tick()
	}
	return st
}

// Snapshot returns a detached copy of the simulation for renderers that
// draw in playfield units.
func (g *Game) Snapshot() core.Snapshot {
	if g.sim == nil {
		return core.Snapshot{}
	}
	return g.sim.Snapshot()
}

// Stats returns the simulation counters.
func (g *Game) Stats() core.Stats {
	if g.sim == nil {
		return core.Stats{}
	}
	return g.sim.Stats()
}

// Inspect returns the counters as logging key/values.
func (g *Game) Inspect() []any {
	st := g.Stats()
	snap := g.Snapshot()
	return []any{
		"tick", snap.Tick,
		"fired", st.Fired,
		"split", st.Split,
		"children", st.Children,
		"spawned", st.Spawned,
		"destroyed", st.Destroyed,
		"projectiles", len(snap.Projectiles),
		"enemies", len(snap.Enemies),
		"peak_projectiles", st.PeakBullet,
	}
}

// ParamsFromConfig maps the YAML configuration onto simulation parameters.
func ParamsFromConfig(cfg config.ColumnsConfig) core.Params {
	p := core.Params{
		Playfield: core.Playfield{
			Width:   cfg.Playfield.Width,
			Height:  cfg.Playfield.Height,
			Columns: cfg.Playfield.Columns,
		},
		PlayerSize:     cfg.Player.Size,
		PlayerMoveStep: cfg.Player.MoveStep,
		FireRate:       cfg.Player.FireRate,
		BulletSpeed:    cfg.Projectiles.Speed,
		BulletSize:     cfg.Projectiles.Size,
		FanSpacing:     cfg.Projectiles.FanSpacing,
		EnemySize:      cfg.Enemies.Size,
		EnemyMoveSpeed: cfg.Enemies.Speed,
		EnemySpawnProb: cfg.Enemies.SpawnProb,
		MaxEnemies:     cfg.Enemies.Max,
		HoverLine:      cfg.Enemies.HoverLine,
		Multipliers:    make([]core.Multiplier, len(cfg.Multipliers)),
		InitialEnemies: make([]core.Body, len(cfg.InitialEnemies)),
	}
	for i, m := range cfg.Multipliers {
		p.Multipliers[i] = core.Multiplier{Y: m.Y, FanCount: m.Fan}
	}
	for i, e := range cfg.InitialEnemies {
		p.InitialEnemies[i] = core.Body{X: e.X, Y: e.Y, Size: e.Size}
	}
	return p
}

// Validate reports whether cfg would build a simulation.
func Validate(cfg config.ColumnsConfig) error {
	if err := ParamsFromConfig(cfg).Validate(); err != nil {
		return fmt.Errorf("columns: config %q: %w", cfg.Name, err)
	}
	return nil
}
