// Package replay records the per-tick input of a session and plays it back.
// A recording plus the seed and configuration reproduces the session
// exactly, because the simulation is deterministic.
package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/vovakirdan/column-clearer/internal/core"
)

// Version is written into every recording.
const Version = "1.0"

// Event is one recorded input event.
type Event struct {
	Tick   uint64      `json:"t"`           // Frame the event was delivered on
	Action core.Action `json:"a"`           // Platform action
	X      float64     `json:"x,omitempty"` // Pointer x or resize width
	Y      float64     `json:"y,omitempty"` // Resize height
}

// Data contains all data needed to replay a session.
type Data struct {
	ID         int64     `json:"id,omitempty"` // Storage row, zero until saved
	Version    string    `json:"version"`
	GameID     string    `json:"game"`
	Seed       int64     `json:"seed"`
	ConfigName string    `json:"config"`
	ConfigYAML string    `json:"config_yaml"` // Effective configuration
	Width      float64   `json:"width"`       // Playfield size at start
	Height     float64   `json:"height"`
	StartTime  time.Time `json:"start_time"`
	Frames     uint64    `json:"frames"` // Step calls recorded
	Events     []Event   `json:"events"`
}

// Duration returns the recorded length at the given tick rate.
func (d *Data) Duration(tickRate int) time.Duration {
	if tickRate <= 0 {
		return 0
	}
	return time.Duration(d.Frames) * time.Second / time.Duration(tickRate)
}

// Encode writes the recording as indented JSON.
func (d *Data) Encode(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("replay: failed to encode: %w", err)
	}
	return nil
}

// Decode reads a recording written by Encode.
func Decode(r io.Reader) (*Data, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("replay: failed to decode: %w", err)
	}
	if d.Version != Version {
		return nil, fmt.Errorf("replay: unsupported version %q", d.Version)
	}
	return &d, nil
}
