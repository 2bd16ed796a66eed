package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/column-clearer/internal/core"
)

// colorStyles maps core.Color to lipgloss styles. ColorDefault is absent
// and renders unstyled.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorBlue:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorOlive: lipgloss.NewStyle().Foreground(lipgloss.Color("107")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each run of same-colored cells in a row gets one style, which keeps the
// number of escape sequences per frame small.
func RenderScreen(s *core.Screen) string {
	var sb, run strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	flush := func(c core.Color) {
		if run.Len() == 0 {
			return
		}
		if style, ok := colorStyles[c]; ok {
			sb.WriteString(style.Render(run.String()))
		} else {
			sb.WriteString(run.String())
		}
		run.Reset()
	}

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		current := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current {
				flush(current)
				current = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		flush(current)
	}
	return sb.String()
}
