package replay

import (
	"time"

	"github.com/vovakirdan/column-clearer/internal/core"
)

// Header describes the session a Recorder captures.
type Header struct {
	GameID     string
	Seed       int64
	ConfigName string
	ConfigYAML string
	Width      float64
	Height     float64
}

// Recorder handles input recording for replay.
type Recorder struct {
	data      Data
	recording bool
}

// NewRecorder creates a recorder for a session starting now.
func NewRecorder(h Header) *Recorder {
	return &Recorder{
		data: Data{
			Version:    Version,
			GameID:     h.GameID,
			Seed:       h.Seed,
			ConfigName: h.ConfigName,
			ConfigYAML: h.ConfigYAML,
			Width:      h.Width,
			Height:     h.Height,
			StartTime:  time.Now(),
			Events:     make([]Event, 0, 256),
		},
		recording: true,
	}
}

// Recordable reports whether an action affects the simulation. Quit and
// restart are host controls and never reach a recording.
func Recordable(a core.Action) bool {
	switch a {
	case core.ActionNone, core.ActionQuit, core.ActionRestart:
		return false
	}
	return true
}

// RecordFrame records the input delivered to one Step call.
func (r *Recorder) RecordFrame(in core.InputFrame) {
	if !r.recording {
		return
	}

	for _, ev := range in.Events {
		if !Recordable(ev.Action) {
			continue
		}
		r.data.Events = append(r.data.Events, Event{
			Tick:   r.data.Frames,
			Action: ev.Action,
			X:      ev.X,
			Y:      ev.Y,
		})
	}
	r.data.Frames++
}

// Stop stops recording.
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active.
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames.
func (r *Recorder) FrameCount() uint64 {
	return r.data.Frames
}

// Data returns a copy of the recording.
func (r *Recorder) Data() Data {
	d := r.data
	d.Events = append([]Event(nil), r.data.Events...)
	return d
}
