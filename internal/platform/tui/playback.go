package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/registry"
	"github.com/vovakirdan/column-clearer/internal/replay"
)

// maxPlaybackSpeed caps frames stepped per tick.
const maxPlaybackSpeed = 16

// PlaybackModel is the Bubble Tea model for watching a stored replay.
type PlaybackModel struct {
	game     registry.Game
	data     replay.Data
	replayer *replay.Replayer
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     ReplayKeyMap
	help     help.Model
	logger   *log.Logger
	speed    int
	paused   bool
	done     bool
	quitting bool
}

// NewPlaybackModel resets game with the replay's seed.
func NewPlaybackModel(game registry.Game, data replay.Data, cfg core.RuntimeConfig, logger *log.Logger) (PlaybackModel, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg.Seed = data.Seed
	if err := game.Reset(cfg); err != nil {
		return PlaybackModel{}, fmt.Errorf("tui: replay %d: %w", data.ID, err)
	}

	return PlaybackModel{
		game:     game,
		data:     data,
		replayer: replay.NewReplayer(data),
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH-2), // Status and help lines
		config:   cfg,
		keys:     DefaultReplayKeyMap(),
		help:     help.New(),
		logger:   logger,
		speed:    1,
	}, nil
}

// Init starts the tick loop.
func (m PlaybackModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m PlaybackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed*2, maxPlaybackSpeed)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed/2, 1)
		case key.Matches(msg, m.keys.Restart):
			m.rewind()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-2)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.advance()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// advance steps up to speed recorded frames.
func (m *PlaybackModel) advance() {
	if m.paused || m.done {
		return
	}
	for range m.speed {
		in, ok := m.replayer.NextFrame()
		if !ok {
			m.done = true
			kv := []any{"replay", m.data.ID, "frames", m.replayer.TotalFrames()}
			if insp, ok := m.game.(registry.Inspector); ok {
				kv = append(kv, insp.Inspect()...)
			}
			m.logger.Info("replay finished", kv...)
			return
		}
		m.game.Step(in)
	}
}

// rewind restarts playback from the first frame.
func (m *PlaybackModel) rewind() {
	if err := m.game.Reset(m.config); err != nil {
		m.logger.Error("rewind failed", "err", err)
		return
	}
	m.replayer.Reset()
	m.done = false
}

// Status returns the playback status line.
func (m PlaybackModel) Status() string {
	state := "playing"
	switch {
	case m.done:
		state = "finished"
	case m.paused:
		state = "paused"
	}
	return fmt.Sprintf("replay #%d  seed %d  frame %d/%d  x%d  %s",
		m.data.ID, m.data.Seed, m.replayer.CurrentFrame(), m.replayer.TotalFrames(), m.speed, state)
}

// View renders the replay.
func (m PlaybackModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + m.Status() + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// RunPlayback plays data back in the terminal.
func RunPlayback(game registry.Game, data replay.Data, cfg core.RuntimeConfig, logger *log.Logger) error {
	model, err := NewPlaybackModel(game, data, cfg, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
