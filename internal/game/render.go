package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/handflap/internal/core"
)

// Visual characters for rendering
const (
	AvatarChar    = '●'
	AvatarBeak    = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	TrackerChar   = '◆'
)

// viewport maps playfield units onto screen cells. The bottom row is
// reserved for the ground line.
type viewport struct {
	sx, sy float64
	rows   int
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	rows := dst.Height() - 1
	return viewport{
		sx:   float64(dst.Width()) / worldW,
		sy:   float64(rows) / worldH,
		rows: rows,
	}
}

// cells converts a world rectangle into the cell span it covers.
func (v viewport) cells(r core.Rect) (x, y, w, h int) {
	x0 := int(math.Floor(r.X * v.sx))
	y0 := int(math.Floor(r.Y * v.sy))
	x1 := int(math.Ceil(r.Right() * v.sx))
	y1 := int(math.Ceil(r.Bottom() * v.sy))
	y0 = core.Clamp(y0, -1, v.rows)
	y1 = core.Clamp(y1, -1, v.rows)
	return x0, y0, x1 - x0, y1 - y0
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y * v.sy))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() < 2 {
		return
	}

	snap := g.Snapshot()
	vp := newViewport(dst, g.cfg.Screen.Width, g.cfg.Screen.Height)

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar, core.ColorGray)

	for _, p := range snap.Pairs {
		drawPair(dst, vp, p)
	}

	drawAvatar(dst, vp, snap.AvatarBox)

	// Where the filter currently places the fingertip
	dst.Set(0, vp.row(snap.Smoothed), TrackerChar, core.ColorCyan)

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorBrightWhite)

	if snap.Phase == GameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	}
}

// drawPair renders both pipes of an obstacle pair with caps facing the gap.
func drawPair(dst *core.Screen, vp viewport, p Pair) {
	x, y, w, h := vp.cells(p.Top)
	dst.FillRect(x, y, w, h, PipeChar, core.ColorGreen)
	if h > 0 {
		dst.DrawHLine(x, y+h-1, w, PipeCapTop, core.ColorBrightGreen)
	}

	x, y, w, h = vp.cells(p.Bottom)
	dst.FillRect(x, y, w, h, PipeChar, core.ColorGreen)
	if h > 0 {
		dst.DrawHLine(x, y, w, PipeCapBottom, core.ColorBrightGreen)
	}
}

func drawAvatar(dst *core.Screen, vp viewport, box core.Rect) {
	x, y, w, h := vp.cells(box)
	w, h = max(w, 1), max(h, 1)
	dst.FillRect(x, y, w, h, AvatarChar, core.ColorBrightYellow)
	dst.Set(x+w-1, y, AvatarBeak, core.ColorYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorWhite)

	dst.DrawTextCentered(boxY+1, title, core.ColorBrightRed)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorWhite)
}
