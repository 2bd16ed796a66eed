package replay

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/column-clearer/internal/config"
	"github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/games/columns"
)

func testHeader() Header {
	return Header{GameID: columns.ID, Seed: 42, ConfigName: "classic", Width: 500, Height: 800}
}

func TestRecorder_RecordFrame(t *testing.T) {
	rec := NewRecorder(testHeader())
	assert.True(t, rec.IsRecording())

	f := core.NewInputFrame()
	f.Set(core.ActionLeftPress)
	rec.RecordFrame(f)

	rec.RecordFrame(core.NewInputFrame())

	f.Clear()
	f.SetPointer(120)
	f.Set(core.ActionQuit)
	f.Set(core.ActionRestart)
	rec.RecordFrame(f)

	data := rec.Data()
	assert.Equal(t, uint64(3), rec.FrameCount())
	assert.Equal(t, Version, data.Version)
	assert.Equal(t, int64(42), data.Seed)
	require.Len(t, data.Events, 2)
	assert.Equal(t, Event{Tick: 0, Action: core.ActionLeftPress}, data.Events[0])
	assert.Equal(t, Event{Tick: 2, Action: core.ActionPointer, X: 120}, data.Events[1])
}

func TestRecorder_Stop(t *testing.T) {
	rec := NewRecorder(testHeader())
	rec.RecordFrame(core.NewInputFrame())
	rec.Stop()
	rec.RecordFrame(core.NewInputFrame())

	assert.False(t, rec.IsRecording())
	assert.Equal(t, uint64(1), rec.FrameCount())
}

func TestRecorder_DataIsCopy(t *testing.T) {
	rec := NewRecorder(testHeader())
	f := core.NewInputFrame()
	f.Set(core.ActionRightPress)
	rec.RecordFrame(f)

	data := rec.Data()
	data.Events[0].Action = core.ActionLeftPress

	assert.Equal(t, core.ActionRightPress, rec.Data().Events[0].Action)
}

func TestReplayer_NextFrame(t *testing.T) {
	data := Data{
		Version: Version,
		Seed:    7,
		Frames:  4,
		Events: []Event{
			{Tick: 0, Action: core.ActionLeftPress},
			{Tick: 2, Action: core.ActionLeftRelease},
			{Tick: 2, Action: core.ActionPointer, X: 55},
		},
	}

	r := NewReplayer(data)
	assert.Equal(t, int64(7), r.Seed())
	assert.Equal(t, uint64(4), r.TotalFrames())

	// Frame 0
	in, ok := r.NextFrame()
	require.True(t, ok)
	assert.True(t, in.Has(core.ActionLeftPress))

	// Frame 1
	in, ok = r.NextFrame()
	require.True(t, ok)
	assert.True(t, in.Empty())

	// Frame 2 keeps event order
	in, ok = r.NextFrame()
	require.True(t, ok)
	require.Len(t, in.Events, 2)
	assert.Equal(t, core.ActionLeftRelease, in.Events[0].Action)
	assert.Equal(t, core.InputEvent{Action: core.ActionPointer, X: 55}, in.Events[1])

	// Frame 3
	_, ok = r.NextFrame()
	require.True(t, ok)
	assert.True(t, r.Done())

	_, ok = r.NextFrame()
	assert.False(t, ok)

	r.Reset()
	assert.Equal(t, uint64(0), r.CurrentFrame())
	in, ok = r.NextFrame()
	require.True(t, ok)
	assert.True(t, in.Has(core.ActionLeftPress))
}

func TestSimulate_ReproducesSession(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 99

	live := columns.New(config.DefaultColumnsConfig(), nil)
	require.NoError(t, live.Reset(cfg))

	h := testHeader()
	h.Seed = cfg.Seed
	rec := NewRecorder(h)

	for i := range 900 {
		f := core.NewInputFrame()
		switch i % 90 {
		case 5:
			f.Set(core.ActionLeftPress)
		case 30:
			f.Set(core.ActionLeftRelease)
		case 45:
			f.Set(core.ActionRightPress)
		case 80:
			f.Set(core.ActionRightRelease)
			f.SetPointer(float64(i % 500))
		}
		if i == 300 || i == 330 {
			f.Set(core.ActionPause)
		}
		rec.RecordFrame(f)
		live.Step(f)
	}

	replayed := columns.New(config.DefaultColumnsConfig(), nil)
	state, err := Simulate(replayed, rec.Data(), core.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, live.State(), state)
	assert.Equal(t, uint64(870), state.Tick, "30 paused frames do not advance")
	assert.Equal(t, live.Stats(), replayed.Stats())
	assert.Equal(t, live.Snapshot(), replayed.Snapshot())
}

func TestSimulate_BadConfig(t *testing.T) {
	cfg := config.DefaultColumnsConfig()
	cfg.Player.FireRate = 0

	_, err := Simulate(columns.New(cfg, nil), Data{Version: Version}, core.DefaultConfig())
	assert.Error(t, err)
}

func TestData_EncodeDecode(t *testing.T) {
	rec := NewRecorder(testHeader())
	f := core.NewInputFrame()
	f.SetResize(640, 480)
	rec.RecordFrame(f)
	data := rec.Data()

	var buf bytes.Buffer
	require.NoError(t, data.Encode(&buf))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, data.Seed, decoded.Seed)
	assert.Equal(t, data.Frames, decoded.Frames)
	assert.Equal(t, data.Events, decoded.Events)
	assert.True(t, data.StartTime.Equal(decoded.StartTime))
}

func TestDecode_RejectsUnknownVersion(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version":"0.1","frames":0}`))
	assert.ErrorContains(t, err, "unsupported version")

	_, err = Decode(strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestData_Duration(t *testing.T) {
	d := Data{Frames: 120}
	assert.Equal(t, 2*time.Second, d.Duration(60))
	assert.Equal(t, time.Duration(0), d.Duration(0))
}
