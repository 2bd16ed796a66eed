package window

import (
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/column-clearer/internal/config"
	"github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/games/columns"
	"github.com/vovakirdan/column-clearer/internal/platform/session"
	"github.com/vovakirdan/column-clearer/internal/storage"
)

// fakeDevice is a scripted Device for one frame at a time.
type fakeDevice struct {
	pressed  map[ebiten.Key]bool
	released map[ebiten.Key]bool
	pointer  *[2]int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{pressed: map[ebiten.Key]bool{}, released: map[ebiten.Key]bool{}}
}

func (d *fakeDevice) KeyJustPressed(k ebiten.Key) bool  { return d.pressed[k] }
func (d *fakeDevice) KeyJustReleased(k ebiten.Key) bool { return d.released[k] }

func (d *fakeDevice) Pointer() (int, int, bool) {
	if d.pointer == nil {
		return 0, 0, false
	}
	return d.pointer[0], d.pointer[1], true
}

// next clears the script for the following frame.
func (d *fakeDevice) next() {
	clear(d.pressed)
	clear(d.released)
	d.pointer = nil
}

func actions(f core.InputFrame) []core.Action {
	var out []core.Action
	for _, ev := range f.Events {
		out = append(out, ev.Action)
	}
	return out
}

func TestInput_Read(t *testing.T) {
	tests := []struct {
		name     string
		pressed  []ebiten.Key
		released []ebiten.Key
		pointer  *[2]int
		want     []core.Action
	}{
		{name: "nothing", want: nil},
		{name: "arrow press", pressed: []ebiten.Key{ebiten.KeyArrowLeft}, want: []core.Action{core.ActionLeftPress}},
		{name: "letter press", pressed: []ebiten.Key{ebiten.KeyD}, want: []core.Action{core.ActionRightPress}},
		{name: "both keys of a direction", pressed: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, want: []core.Action{core.ActionRightPress}},
		{name: "release without press", released: []ebiten.Key{ebiten.KeyA}, want: nil},
		{name: "pointer", pointer: &[2]int{120, 300}, want: []core.Action{core.ActionPointer}},
		{name: "pause", pressed: []ebiten.Key{ebiten.KeyEscape}, want: []core.Action{core.ActionPause}},
		{name: "restart and quit", pressed: []ebiten.Key{ebiten.KeyR, ebiten.KeyQ}, want: []core.Action{core.ActionRestart, core.ActionQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newFakeDevice()
			for _, k := range tt.pressed {
				dev.pressed[k] = true
			}
			for _, k := range tt.released {
				dev.released[k] = true
			}
			dev.pointer = tt.pointer

			frame := core.NewInputFrame()
			NewInput(DefaultKeyMap()).Read(dev, &frame)
			assert.Equal(t, tt.want, actions(frame))
		})
	}
}

func TestInput_ReleaseWaitsForLastKey(t *testing.T) {
	in := NewInput(DefaultKeyMap())
	dev := newFakeDevice()
	frame := core.NewInputFrame()

	dev.pressed[ebiten.KeyArrowLeft] = true
	in.Read(dev, &frame)
	dev.next()
	dev.pressed[ebiten.KeyA] = true
	in.Read(dev, &frame)
	assert.Equal(t, []core.Action{core.ActionLeftPress}, actions(frame))

	frame.Clear()
	dev.next()
	dev.released[ebiten.KeyArrowLeft] = true
	in.Read(dev, &frame)
	assert.True(t, frame.Empty(), "left is still held by A")

	dev.next()
	dev.released[ebiten.KeyA] = true
	in.Read(dev, &frame)
	assert.Equal(t, []core.Action{core.ActionLeftRelease}, actions(frame))
}

func TestInput_Resume(t *testing.T) {
	in := NewInput(DefaultKeyMap())
	dev := newFakeDevice()
	frame := core.NewInputFrame()

	dev.pressed[ebiten.KeyD] = true
	in.Read(dev, &frame)

	frame.Clear()
	in.Resume(&frame)
	assert.Equal(t, []core.Action{core.ActionRightPress}, actions(frame))
}

func newTestGame(t *testing.T, follow bool, store *storage.Store) (*Game, *columns.Game, *fakeDevice) {
	t.Helper()
	cfg := config.DefaultColumnsConfig()
	cfg.Enemies.SpawnProb = 0
	game := columns.New(cfg, nil)

	g, err := New(game, core.RuntimeConfig{TickRate: 60, Seed: 3}, Options{
		Session:       session.Options{Store: store, Config: cfg},
		FollowDisplay: follow,
	})
	require.NoError(t, err)

	dev := newFakeDevice()
	g.device = dev
	return g, game, dev
}

func TestGame_UpdateMovesPlayer(t *testing.T) {
	g, game, dev := newTestGame(t, false, nil)
	start := game.Snapshot().Player.X

	dev.pressed[ebiten.KeyArrowRight] = true
	require.NoError(t, g.Update())
	dev.next()
	for range 9 {
		require.NoError(t, g.Update())
	}

	assert.Equal(t, start+50, game.Snapshot().Player.X)
	assert.Equal(t, uint64(10), g.state.Tick)
}

func TestGame_PointerUsesScreenPixels(t *testing.T) {
	g, game, dev := newTestGame(t, false, nil)

	dev.pointer = &[2]int{120, 700}
	require.NoError(t, g.Update())

	assert.Equal(t, 120.0, game.Snapshot().Player.X)
}

func TestGame_LayoutFixedField(t *testing.T) {
	g, _, _ := newTestGame(t, false, nil)

	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 500, w)
	assert.Equal(t, 800, h)
	assert.Nil(t, g.pending)
}

func TestGame_LayoutFollowsDisplay(t *testing.T) {
	g, game, _ := newTestGame(t, true, nil)

	w, h := g.Layout(640, 480)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	require.NotNil(t, g.pending)

	require.NoError(t, g.Update())
	field := game.Snapshot().Playfield
	assert.Equal(t, 640.0, field.Width)
	assert.Equal(t, 480.0, field.Height)
	assert.Equal(t, 400.0, game.Snapshot().Player.Y)
	assert.Nil(t, g.pending)

	// Same size again queues nothing
	g.Layout(640, 480)
	assert.Nil(t, g.pending)
}

func TestGame_QuitSavesReplay(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	g, _, dev := newTestGame(t, true, store)
	g.Layout(600, 900)
	for range 20 {
		require.NoError(t, g.Update())
	}

	dev.pressed[ebiten.KeyQ] = true
	assert.ErrorIs(t, g.Update(), ebiten.Termination)

	entries, err := store.ListReplays(columns.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(20), entries[0].Frames)

	data, err := store.LoadReplay(entries[0].ID)
	require.NoError(t, err)
	require.Len(t, data.Events, 1)
	assert.Equal(t, core.ActionResize, data.Events[0].Action)
	assert.Equal(t, 600.0, data.Events[0].X)
	assert.Equal(t, 900.0, data.Events[0].Y)
}

func TestGame_RestartKeepsHeldKeys(t *testing.T) {
	g, game, dev := newTestGame(t, false, nil)

	dev.pressed[ebiten.KeyArrowLeft] = true
	require.NoError(t, g.Update())
	dev.next()
	require.NoError(t, g.Update())

	dev.pressed[ebiten.KeyR] = true
	require.NoError(t, g.Update())
	dev.next()
	assert.Equal(t, uint64(0), game.State().Tick)

	start := game.Snapshot().Player.X
	require.NoError(t, g.Update())
	assert.Equal(t, start-5, game.Snapshot().Player.X)
}
