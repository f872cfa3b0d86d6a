package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// drawRect draws a rectangle. It is defined as a variable so tests can
// override it to capture draw calls.
var drawRect = func(dst *ebiten.Image, r image.Rectangle, c color.Color, filled bool) {
	if filled {
		vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
	} else {
		vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, c, false)
	}
}

// drawButton renders a filled rectangle with a border. It can be overridden in tests.
var drawButton = func(dst *ebiten.Image, r image.Rectangle, fill, border color.Color, pressed bool) {
	fc := fill
	if pressed {
		if c, ok := fill.(color.RGBA); ok {
			fc = color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
		}
	}
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fc, false)
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, border, false)
}

var drawLine = func(dst *ebiten.Image, x1, y1, x2, y2 float64, width float64, col color.Color) {
	vector.StrokeLine(dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), col, true)
}

var drawCircle = func(dst *ebiten.Image, x, y, r float64, col color.Color) {
	vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), col, true)
}

// drawArc strokes an arc between two knob angles in degrees, 0 pointing up
// and clockwise positive.
var drawArc = func(dst *ebiten.Image, cx, cy, r, from, to, width float64, col color.Color) {
	const stepDeg = 6.0
	if to < from {
		from, to = to, from
	}
	px, py := arcPoint(cx, cy, r, from)
	for a := from + stepDeg; ; a += stepDeg {
		if a > to {
			a = to
		}
		x, y := arcPoint(cx, cy, r, a)
		drawLine(dst, px, py, x, y, width, col)
		px, py = x, y
		if a >= to {
			break
		}
	}
}

func arcPoint(cx, cy, r, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + r*math.Sin(rad), cy - r*math.Cos(rad)
}

// drawLabel prints small text with the debug font.
var drawLabel = func(dst *ebiten.Image, s string, x, y int) {
	ebitenutil.DebugPrintAt(dst, s, x, y)
}

var uiFace = basicfont.Face7x13

// drawText draws s with its baseline at y in colour c.
var drawText = func(dst *ebiten.Image, s string, x, y int, c color.Color) {
	text.Draw(dst, s, uiFace, x, y, c)
}

// textWidth is the rendered width of s in the UI face.
func textWidth(s string) int { return text.BoundString(uiFace, s).Dx() }

// drawTextCentered centres s horizontally on cx.
func drawTextCentered(dst *ebiten.Image, s string, cx, y int, c color.Color) {
	drawText(dst, s, cx-textWidth(s)/2, y, c)
}
