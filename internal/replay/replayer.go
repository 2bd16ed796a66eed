package replay

import (
	"fmt"

	"github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/registry"
)

// Replayer handles input playback from recorded data.
type Replayer struct {
	data  Data
	frame uint64
	next  int // Index of the first event not yet delivered
}

// NewReplayer creates a new replayer from replay data.
func NewReplayer(data Data) *Replayer {
	return &Replayer{data: data}
}

// NextFrame returns the input for the current frame and advances.
// ok is false once every recorded frame has been delivered.
func (r *Replayer) NextFrame() (in core.InputFrame, ok bool) {
	if r.frame >= r.data.Frames {
		return core.InputFrame{}, false
	}

	in = core.NewInputFrame()
	for r.next < len(r.data.Events) && r.data.Events[r.next].Tick == r.frame {
		ev := r.data.Events[r.next]
		in.Events = append(in.Events, core.InputEvent{Action: ev.Action, X: ev.X, Y: ev.Y})
		r.next++
	}
	r.frame++
	return in, true
}

// Done reports whether playback has finished.
func (r *Replayer) Done() bool {
	return r.frame >= r.data.Frames
}

// CurrentFrame returns the current frame number.
func (r *Replayer) CurrentFrame() uint64 {
	return r.frame
}

// TotalFrames returns the total number of frames.
func (r *Replayer) TotalFrames() uint64 {
	return r.data.Frames
}

// Seed returns the seed used for the replay.
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Reset rewinds the replayer to the beginning.
func (r *Replayer) Reset() {
	r.frame = 0
	r.next = 0
}

// Simulate resets g with the recording's seed and feeds every recorded
// frame without rendering. It returns the final state.
func Simulate(g registry.Game, data Data, cfg core.RuntimeConfig) (core.GameState, error) {
	cfg.Seed = data.Seed
	if err := g.Reset(cfg); err != nil {
		return core.GameState{}, fmt.Errorf("replay: reset: %w", err)
	}

	r := NewReplayer(data)
	state := g.State()
	for {
		in, ok := r.NextFrame()
		if !ok {
			break
		}
		state = g.Step(in).State
	}
	return state, nil
}
