package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/column-clearer/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, 'x', core.ColorRed)
	s.SetColored(3, 0, 'y', core.ColorRed)
	s.DrawText(0, 1, "second")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "xy") {
		t.Errorf("first line %q lost its text", lines[0])
	}
	if lines[1] != "second" {
		t.Errorf("unstyled line = %q, want %q", lines[1], "second")
	}
}

func TestRenderScreenEmpty(t *testing.T) {
	if out := RenderScreen(core.NewScreen(0, 0)); out != "" {
		t.Errorf("empty screen rendered %q", out)
	}
}
