package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/column-clearer/internal/config"
	"github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/games/columns"
	"github.com/vovakirdan/column-clearer/internal/replay"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in, want string
	}{
		{"~/.columns/columns.log", filepath.Join(home, ".columns/columns.log")},
		{"/var/log/columns.log", "/var/log/columns.log"},
		{"relative.log", "relative.log"},
	}
	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// record plays a short scripted session and returns its recording.
func record(t *testing.T) *replay.Data {
	t.Helper()
	cfg := config.DefaultColumnsConfig()
	rec := replay.NewRecorder(replay.Header{GameID: columns.ID, Seed: 21, ConfigName: cfg.Name})
	game := columns.New(cfg, nil)
	if err := game.Reset(core.RuntimeConfig{TickRate: 60, Seed: 21}); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	for i := range 240 {
		in := core.NewInputFrame()
		if i == 0 {
			in.Set(core.ActionLeftPress)
		}
		rec.RecordFrame(in)
		game.Step(in)
	}
	rec.Stop()
	data := rec.Data()

	yaml, err := config.Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() failed: %v", err)
	}
	data.ConfigYAML = string(yaml)
	data.ID = 4
	return &data
}

func TestSimulatePrintsCounters(t *testing.T) {
	var out bytes.Buffer
	if err := simulate(record(t), log.New(&bytes.Buffer{}), &out); err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{"replay #4", "seed 21", "tick", "240", "fired", "12"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestExportWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.json")
	data := record(t)
	if err := export(data, path); err != nil {
		t.Fatalf("export() failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	decoded, err := replay.Decode(f)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if decoded.Frames != data.Frames || len(decoded.Events) != len(data.Events) {
		t.Errorf("decoded %d frames/%d events, want %d/%d",
			decoded.Frames, len(decoded.Events), data.Frames, len(data.Events))
	}
}
