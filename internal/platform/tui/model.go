package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/column-clearer/internal/config"
	"github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/platform/session"
	"github.com/vovakirdan/column-clearer/internal/registry"
)

// helpStyle renders the key help line under the playfield.
var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for playing a game in the terminal.
type Model struct {
	sess       *session.Session
	screen     *core.Screen
	config     core.RuntimeConfig
	input      config.InputConfig
	keys       GameKeyMap
	help       help.Model
	hold       *HoldTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	logger     *log.Logger
	quitting   bool
}

// NewModel creates the model and starts the session. cfg.Seed of 0 picks
// a time-based seed.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts session.Options) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sess := session.New(game, opts)
	if err := sess.Start(cfg); err != nil {
		return Model{}, err
	}

	return Model{
		sess:       sess,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH-1), // Last row is the help line
		config:     cfg,
		input:      opts.Config.Input,
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		hold:       NewHoldTracker(opts.Config.Input.HoldTicks, opts.Config.Input.RepeatTicks),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		logger:     logger,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.sess.Finish()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()

	case key.Matches(msg, m.keys.Left):
		m.hold.Press(DirLeft, &m.inputFrame)

	case key.Matches(msg, m.keys.Right):
		m.hold.Press(DirRight, &m.inputFrame)

	case key.Matches(msg, m.keys.Pause):
		// Nothing repeats while paused, so held keys would time out anyway
		m.hold.ReleaseAll(&m.inputFrame)
		m.inputFrame.Set(core.ActionPause)

	case key.Matches(msg, m.keys.Restart):
		m.inputFrame.Set(core.ActionRestart)
	}

	return m, nil
}

// handleMouse turns left-button clicks and drags into pointer positions.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return m, nil
	}

	pm, ok := m.sess.Game().(registry.PointerMapper)
	if !ok {
		return m, nil
	}
	if x, ok := pm.PointerToField(msg.X, msg.Y, m.screen.Width(), m.screen.Height()); ok {
		m.inputFrame.SetPointer(x)
	}
	return m, nil
}

// handleResize processes window resize events. The game scales its
// playfield into whatever screen it gets, so no reset is needed.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-1)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		return m.restart()
	}

	m.hold.Tick(&m.inputFrame)
	result := m.sess.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// restart saves the current recording and starts over with a new seed.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.sess.Finish()

	m.config.Seed = time.Now().UnixNano()
	if err := m.sess.Start(m.config); err != nil {
		m.logger.Error("restart failed", "err", err)
		m.quitting = true
		return m, tea.Quit
	}

	m.hold = NewHoldTracker(m.input.HoldTicks, m.input.RepeatTicks)
	m.gameState = m.sess.Game().State()
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.screen.Clear()
	m.sess.Game().Render(m.screen)

	dir := filepath.Join(config.DataDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.sess.Game().ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.sess.Game().Render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for game and blocks until it exits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts session.Options) error {
	model, err := NewModel(game, cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks and drags position the player
	)

	_, err = p.Run()

	// Covers exits that bypass the quit key (signals, program errors)
	model.sess.Finish()
	return err
}
