package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// Styles used by the dashboard chrome.
var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleStatus  = lipgloss.NewStyle().Foreground(colorGray)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleHelp    = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
)

// borderSet is the rune set a tile box is drawn with. Different sets
// distinguish normal, selected, and gesture-preview tiles on a plain rune
// canvas without per-cell styling.
type borderSet struct {
	tl, tr, bl, br rune
	h, v           rune
	fill           rune
}

var (
	borderNormal   = borderSet{'┌', '┐', '└', '┘', '─', '│', 0}
	borderSelected = borderSet{'╔', '╗', '╚', '╝', '═', '║', 0}
	borderPreview  = borderSet{'┌', '┐', '└', '┘', '╌', '╎', '░'}
	borderConflict = borderSet{'┌', '┐', '└', '┘', '╌', '╎', '▒'}
)

// canvas is a rune buffer the dashboard view composes tiles onto.
// Coordinates are terminal character cells, origin top-left.
type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for y := range cells {
		row := make([]rune, w)
		for x := range row {
			row[x] = ' '
		}
		cells[y] = row
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

// box draws a bordered rectangle. Width and height are in characters and
// must be at least 2 to fit the border; smaller boxes are skipped.
func (c *canvas) box(x, y, w, h int, b borderSet) {
	if w < 2 || h < 2 {
		return
	}
	if b.fill != 0 {
		for fy := y + 1; fy < y+h-1; fy++ {
			for fx := x + 1; fx < x+w-1; fx++ {
				c.set(fx, fy, b.fill)
			}
		}
	}
	for fx := x + 1; fx < x+w-1; fx++ {
		c.set(fx, y, b.h)
		c.set(fx, y+h-1, b.h)
	}
	for fy := y + 1; fy < y+h-1; fy++ {
		c.set(x, fy, b.v)
		c.set(x+w-1, fy, b.v)
	}
	c.set(x, y, b.tl)
	c.set(x+w-1, y, b.tr)
	c.set(x, y+h-1, b.bl)
	c.set(x+w-1, y+h-1, b.br)
}

// text writes s at (x, y), truncated to maxW characters. Columns are
// counted per rune, not per byte.
func (c *canvas) text(x, y, maxW int, s string) {
	col := 0
	for _, r := range s {
		if col >= maxW {
			return
		}
		c.set(x+col, y, r)
		col++
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(string(row), " "))
	}
	return b.String()
}
