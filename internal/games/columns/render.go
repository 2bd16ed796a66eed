package columns

import (
	"fmt"
	"math"

	platformcore "github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/games/columns/core"
)

// Visual characters for rendering
const (
	PlayerChar     = '█'
	ProjectileChar = '•'
	EnemyChar      = '●'
	MultiplierChar = '═'
	ColumnChar     = '┊'
	BorderChar     = '│'
)

// cellAspect is how much taller a terminal cell is than it is wide.
const cellAspect = 2.0

// columnLineExtent is the fraction of the height column lines are drawn to.
const columnLineExtent = 0.75

// fitSlack absorbs float error when a field divides evenly into cells.
const fitSlack = 1e-9

// viewport maps playfield units onto screen cells, keeping the field's
// aspect ratio and centering it horizontally.
type viewport struct {
	offX, offY int
	cols, rows int
	unitW      float64 // Playfield units per cell column
	unitH      float64 // Playfield units per cell row
}

// newViewport fits field into a w x h cell screen.
func newViewport(field core.Playfield, w, h int) viewport {
	if w <= 0 || h <= 0 || field.Width <= 0 || field.Height <= 0 {
		return viewport{}
	}

	unitH := field.Height / float64(h)
	unitW := unitH / cellAspect
	if field.Width/unitW > float64(w) {
		// Too wide: fit by width instead
		unitW = field.Width / float64(w)
		unitH = unitW * cellAspect
	}

	cols := platformcore.Clamp(int(math.Ceil(field.Width/unitW-fitSlack)), 1, w)
	rows := platformcore.Clamp(int(math.Ceil(field.Height/unitH-fitSlack)), 1, h)
	return viewport{
		offX:  (w - cols) / 2,
		offY:  (h - rows) / 2,
		cols:  cols,
		rows:  rows,
		unitW: unitW,
		unitH: unitH,
	}
}

// valid reports whether the viewport has any area.
func (v viewport) valid() bool {
	return v.cols > 0 && v.rows > 0
}

// cell converts a playfield point to a screen cell.
func (v viewport) cell(x, y float64) (int, int) {
	return v.offX + int(math.Floor(x/v.unitW)), v.offY + int(math.Floor(y/v.unitH))
}

// span returns the cell rectangle covered by a body, at least one cell.
func (v viewport) span(b core.Body) platformcore.Rect {
	half := b.Size / 2
	x0, y0 := v.cell(b.X-half, b.Y-half)
	x1, y1 := v.cell(b.X+half, b.Y+half)
	return platformcore.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// fieldX converts a screen column to the playfield x of its center.
// ok is false outside the field.
func (v viewport) fieldX(cellX int) (float64, bool) {
	if !v.valid() {
		return 0, false
	}
	col := cellX - v.offX
	if col < 0 || col >= v.cols {
		return 0, false
	}
	return (float64(col) + 0.5) * v.unitW, true
}

// Render draws the current simulation into dst.
func (g *Game) Render(dst *platformcore.Screen) {
	if g.sim == nil {
		return
	}
	snap := g.sim.Snapshot()
	v := newViewport(snap.Playfield, dst.Width(), dst.Height())
	if !v.valid() {
		return
	}

	g.renderGrid(dst, v, snap)
	g.renderMultipliers(dst, v, snap)

	for _, e := range snap.Enemies {
		dst.DrawRect(v.span(e), EnemyChar, platformcore.ColorOlive)
	}
	for _, b := range snap.Projectiles {
		x, y := v.cell(b.X, b.Y)
		dst.SetColored(x, y, ProjectileChar, platformcore.ColorRed)
	}
	dst.DrawRect(v.span(snap.Player), PlayerChar, platformcore.ColorWhite)

	if g.paused {
		msg := "PAUSED  p: resume  r: restart  q: quit"
		if len(msg) > v.cols {
			msg = "PAUSED"
		}
		dst.DrawText(v.offX+(v.cols-len(msg))/2, v.offY+v.rows/2, msg)
	}
}

// renderGrid draws the field edges and the column separators.
func (g *Game) renderGrid(dst *platformcore.Screen, v viewport, snap core.Snapshot) {
	dst.DrawVLine(v.offX-1, v.offY, v.rows, BorderChar, platformcore.ColorGray)
	dst.DrawVLine(v.offX+v.cols, v.offY, v.rows, BorderChar, platformcore.ColorGray)

	columns := snap.Playfield.Columns
	if columns < 2 {
		return
	}
	_, bottom := v.cell(0, snap.Playfield.Height*columnLineExtent)
	for i := 1; i < columns; i++ {
		x, top := v.cell(snap.Playfield.Width*float64(i)/float64(columns), 0)
		dst.DrawVLine(x, top, bottom-top, ColumnChar, platformcore.ColorGray)
	}
}

// renderMultipliers draws each multiplier across the left half, where it
// is active, labelled with its fan count.
func (g *Game) renderMultipliers(dst *platformcore.Screen, v viewport, snap core.Snapshot) {
	for _, m := range snap.Multipliers {
		x0, y := v.cell(0, m.Y)
		x1, _ := v.cell(snap.Playfield.Width/2, m.Y)
		dst.DrawHLine(x0, y, x1-x0, MultiplierChar, platformcore.ColorBlue)

		label := fmt.Sprintf("x%d", m.FanCount)
		for i, r := range label {
			dst.SetColored(x1+1+i, y, r, platformcore.ColorBlue)
		}
	}
}

// PointerToField converts a screen cell to a playfield x for a screen of
// the given size. ok is false when the cell is outside the field.
func (g *Game) PointerToField(cellX, cellY, screenW, screenH int) (float64, bool) {
	if g.sim == nil {
		return 0, false
	}
	v := newViewport(g.sim.Playfield(), screenW, screenH)
	if cellY < v.offY || cellY >= v.offY+v.rows {
		return 0, false
	}
	return v.fieldX(cellX)
}
