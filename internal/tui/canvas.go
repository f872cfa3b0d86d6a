package tui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ingyamilmolinar/drift/core/viz"
)

type cell struct {
	r   rune
	col color.NRGBA
	a   float64
}

// Canvas rasterises scene commands onto a grid of terminal cells. Scene
// coordinates are scaled from the engine's size to the grid; fades decay
// cell intensity so trails survive a few frames as in the graphical view.
type Canvas struct {
	cols, rows int
	sw, sh     float64
	cells      []cell
}

var _ viz.Canvas = (*Canvas)(nil)

func NewCanvas(cols, rows int, sceneW, sceneH float64) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows, sceneW, sceneH)
	return c
}

func (c *Canvas) Resize(cols, rows int, sceneW, sceneH float64) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.cols, c.rows = cols, rows
	c.sw, c.sh = sceneW, sceneH
	if len(c.cells) != cols*rows {
		c.cells = make([]cell, cols*rows)
	}
}

func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

func (c *Canvas) toCell(x, y float64) (int, int) {
	if c.sw <= 0 || c.sh <= 0 {
		return -1, -1
	}
	return int(x / c.sw * float64(c.cols)), int(y / c.sh * float64(c.rows))
}

func (c *Canvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

// plot writes r unless a brighter glyph already holds the cell.
func (c *Canvas) plot(col, row int, r rune, clr color.NRGBA, a float64) {
	p := c.at(col, row)
	if p == nil || a <= 0 {
		return
	}
	if p.r != 0 && p.a > a {
		return
	}
	p.r, p.col, p.a = r, clr, math.Min(a, 1)
}

func alpha(c color.NRGBA) float64 { return float64(c.A) / 255 }

func (c *Canvas) Fade(clr color.NRGBA) {
	keep := 1 - alpha(clr)
	for i := range c.cells {
		p := &c.cells[i]
		p.a *= keep
		if p.a < 0.08 {
			*p = cell{}
		}
	}
}

func (c *Canvas) Rect(x, y, w, h float64, clr color.NRGBA) {
	x0, y0 := c.toCell(x, y)
	x1, y1 := c.toCell(x+w, y+h)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			c.plot(col, row, '█', clr, alpha(clr))
		}
	}
}

func (c *Canvas) DashedRect(x, y, w, h, _ float64, clr color.NRGBA) {
	x0, y0 := c.toCell(x, y)
	x1, y1 := c.toCell(x+w, y+h)
	for col := x0; col <= x1; col += 2 {
		c.plot(col, y0, '╌', clr, alpha(clr))
		c.plot(col, y1, '╌', clr, alpha(clr))
	}
	for row := y0; row <= y1; row += 2 {
		c.plot(x0, row, '╎', clr, alpha(clr))
		c.plot(x1, row, '╎', clr, alpha(clr))
	}
}

func (c *Canvas) Circle(x, y, r float64, clr color.NRGBA) {
	col, row := c.toCell(x, y)
	glyph := '·'
	switch {
	case r >= 4:
		glyph = '●'
	case r >= 2:
		glyph = '•'
	}
	c.plot(col, row, glyph, clr, alpha(clr))
}

func (c *Canvas) Glow(x, y, r float64, clr color.NRGBA) {
	cx, cy := c.toCell(x, y)
	rx, ry := c.toCell(x+r, y+r)
	rx, ry = rx-cx, ry-cy
	a := alpha(clr)
	if rx < 1 || ry < 1 {
		// smaller than a cell: a point of light
		c.plot(cx, cy, '•', clr, a)
		return
	}
	for row := cy - ry; row <= cy+ry; row++ {
		for col := cx - rx; col <= cx+rx; col++ {
			dx, dy := float64(col-cx)/float64(rx), float64(row-cy)/float64(ry)
			d := math.Hypot(dx, dy)
			if d > 1 {
				continue
			}
			p := c.at(col, row)
			if p != nil && p.r == 0 {
				c.plot(col, row, '░', clr, a*(1-d))
			}
		}
	}
}

func (c *Canvas) Polyline(pts []viz.Point, _ float64, clr color.NRGBA) {
	for i := 1; i < len(pts); i++ {
		x0, y0 := c.toCell(pts[i-1].X, pts[i-1].Y)
		x1, y1 := c.toCell(pts[i].X, pts[i].Y)
		steps := max(abs(x1-x0), abs(y1-y0))
		for s := 0; s <= steps; s++ {
			t := 0.0
			if steps > 0 {
				t = float64(s) / float64(steps)
			}
			col := x0 + int(math.Round(t*float64(x1-x0)))
			row := y0 + int(math.Round(t*float64(y1-y0)))
			c.plot(col, row, '~', clr, alpha(clr))
		}
	}
}

func (c *Canvas) Text(s string, x, y float64, clr color.NRGBA) {
	col, row := c.toCell(x, y)
	// the baseline sits on the row above in cell space
	row--
	col -= len([]rune(s)) / 2
	for i, r := range s {
		c.plot(col+i, row, r, clr, 1)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Glyph returns the rune at a cell, or ' ' when empty.
func (c *Canvas) Glyph(col, row int) rune {
	p := c.at(col, row)
	if p == nil || p.r == 0 {
		return ' '
	}
	return p.r
}

func hex(clr color.NRGBA, a float64) string {
	s := func(v uint8) uint8 { return uint8(float64(v) * (0.35 + 0.65*a)) }
	return fmt.Sprintf("#%02x%02x%02x", s(clr.R), s(clr.G), s(clr.B))
}

// String renders the grid with colour. Runs of equal colour share one
// style so the output stays short.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < c.cols; col++ {
			p := c.cells[row*c.cols+col]
			clr := ""
			r := ' '
			if p.r != 0 {
				clr, r = hex(p.col, p.a), p.r
			}
			if clr != runColor {
				flush()
				runColor = clr
			}
			run.WriteRune(r)
		}
		flush()
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
