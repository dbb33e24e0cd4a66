package sim

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/simon/game"
)

// panelColors holds the dim and lit color of a panel
type panelColors struct {
	dim, lit tcell.Color
}

var truecolorPanels = [game.MoveCount]panelColors{
	game.MoveRed:    {tcell.NewRGBColor(90, 10, 10), tcell.NewRGBColor(255, 40, 40)},
	game.MoveGreen:  {tcell.NewRGBColor(10, 80, 10), tcell.NewRGBColor(40, 255, 60)},
	game.MoveBlue:   {tcell.NewRGBColor(10, 20, 90), tcell.NewRGBColor(60, 120, 255)},
	game.MoveYellow: {tcell.NewRGBColor(90, 80, 10), tcell.NewRGBColor(255, 230, 40)},
}

var palettePanels = [game.MoveCount]panelColors{
	game.MoveRed:    {tcell.ColorMaroon, tcell.ColorRed},
	game.MoveGreen:  {tcell.ColorGreen, tcell.ColorLime},
	game.MoveBlue:   {tcell.ColorNavy, tcell.ColorBlue},
	game.MoveYellow: {tcell.ColorOlive, tcell.ColorYellow},
}

// quadrant is the classic layout: green and red on top, yellow and blue below
var quadrant = [game.MoveCount][2]int{
	game.MoveGreen:  {0, 0},
	game.MoveRed:    {1, 0},
	game.MoveYellow: {0, 1},
	game.MoveBlue:   {1, 1},
}

// PanelStyle returns the style a panel is drawn with
func (t *Terminal) PanelStyle(m game.Move, lit bool) tcell.Style {
	colors := palettePanels[m]
	if t.mode == ColorModeTrueColor {
		colors = truecolorPanels[m]
	}
	c := colors.dim
	if lit {
		c = colors.lit
	}
	return tcell.StyleDefault.Background(c).Foreground(tcell.ColorBlack)
}

// PanelOrigin returns the top-left cell of panel m for a screen of width x height
func PanelOrigin(m game.Move, width, height int) (x, y, w, h int) {
	w = max((width-3)/2, 1)
	h = max((height-5)/2, 1)
	q := quadrant[m]
	x = 1 + q[0]*(w+1)
	y = 1 + q[1]*(h+1)
	return x, y, w, h
}

// draw repaints everything; caller holds t.mu
func (t *Terminal) draw() {
	t.screen.Clear()
	width, height := t.screen.Size()

	for m := range game.Move(game.MoveCount) {
		x0, y0, w, h := PanelOrigin(m, width, height)
		style := t.PanelStyle(m, t.lit[m])
		for y := y0; y < y0+h; y++ {
			for x := x0; x < x0+w; x++ {
				t.screen.SetContent(x, y, ' ', nil, style)
			}
		}
		label := fmt.Sprintf("%s [%s]", m, t.keys.Label(m))
		drawText(t.screen, x0+max((w-len(label))/2, 0), y0+h/2, label, style)
	}

	s := t.status
	line := fmt.Sprintf(" round %d  length %d  answered %d  best %d  wins %d  losses %d  | %s",
		s.Round, s.Length, s.Answered, s.Best, s.Wins, s.Losses, s.Message)
	drawText(t.screen, 0, height-2, line, tcell.StyleDefault.Bold(true))
	drawText(t.screen, 0, height-1, " press the panel keys to repeat the sequence, q or Esc to quit",
		tcell.StyleDefault.Dim(true))

	t.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
