package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	colcore "github.com/vovakirdan/column-clearer/internal/games/columns/core"
)

// Colors for rendering
var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorLine       = color.RGBA{0, 0, 0, 255}
	colorPlayer     = color.RGBA{0, 0, 0, 255}
	colorProjectile = color.RGBA{255, 0, 0, 255}
	colorEnemy      = color.RGBA{102, 153, 26, 255}
	colorMultiplier = color.RGBA{0, 0, 255, 255}
	colorLabelBack  = color.RGBA{0, 0, 0, 200}
)

const (
	columnLineExtent = 0.75  // Column lines stop at 3/4 of the height
	multiplierHalf   = 5.0   // Half thickness of a multiplier bar
	glyphW, glyphH   = 6, 16 // Debug font cell
)

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.game.Snapshot()
	field := snap.Playfield

	screen.Fill(colorBackground)

	for col := 1; col <= field.Columns; col++ {
		x := float32(float64(col) * field.Width / float64(field.Columns))
		vector.StrokeLine(screen, x, 0, x, float32(field.Height*columnLineExtent), 1, colorLine, false)
	}

	p := snap.Player
	half := p.Size / 2
	vector.DrawFilledRect(screen, float32(p.X-half), float32(p.Y-half), float32(p.Size), float32(p.Size), colorPlayer, false)

	for _, b := range snap.Projectiles {
		drawBody(screen, b, colorProjectile)
	}
	for _, e := range snap.Enemies {
		drawBody(screen, e, colorEnemy)
	}

	for _, m := range snap.Multipliers {
		y := float32(m.Y - multiplierHalf)
		vector.DrawFilledRect(screen, 0, y, float32(field.Width/2), 2*multiplierHalf, colorMultiplier, false)
		drawLabel(screen, fmt.Sprintf("x%d", m.FanCount), 0, int(y)-glyphH)
	}

	if g.state.Paused {
		drawLabel(screen, "PAUSED  p: resume  r: restart  q: quit", 8, 8)
	}
}

func drawBody(screen *ebiten.Image, b colcore.Body, clr color.Color) {
	vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), float32(b.Size/2), clr, true)
}

// drawLabel prints white debug text on a dark box so it shows on the
// white background.
func drawLabel(screen *ebiten.Image, text string, x, y int) {
	w := float32(len(text)*glyphW + 4)
	vector.DrawFilledRect(screen, float32(x), float32(y), w, glyphH, colorLabelBack, false)
	ebitenutil.DebugPrintAt(screen, text, x+2, y)
}
