package viz

import (
	"image/color"
	"math"
)

type Point struct{ X, Y float64 }

// Canvas receives the engine's draw commands. Implementations must not
// retain the points slice passed to Polyline; the engine reuses it.
type Canvas interface {
	// Fade covers the whole surface with c, leaving trails of the
	// previous frame when c is translucent.
	Fade(c color.NRGBA)
	Rect(x, y, w, h float64, c color.NRGBA)
	DashedRect(x, y, w, h, dash float64, c color.NRGBA)
	Circle(x, y, r float64, c color.NRGBA)
	// Glow is a radial gradient from c at the centre to transparent at r.
	Glow(x, y, r float64, c color.NRGBA)
	Polyline(pts []Point, width float64, c color.NRGBA)
	// Text draws s horizontally centred on x with its baseline at y.
	Text(s string, x, y float64, c color.NRGBA)
}

// HSLA converts hue in degrees and saturation, lightness and alpha in
// [0,1] to a colour. Out-of-range inputs are wrapped or clamped.
func HSLA(h, s, l, a float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s, l, a = unit(s), unit(l), unit(a)
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g = c, x
	case hp < 2:
		r, g = x, c
	case hp < 3:
		g, b = c, x
	case hp < 4:
		g, b = x, c
	case hp < 5:
		r, b = x, c
	default:
		r, b = c, x
	}
	m := l - c/2
	return color.NRGBA{R: byteOf(r + m), G: byteOf(g + m), B: byteOf(b + m), A: byteOf(a)}
}

// RGBA builds a colour from 8-bit channels and a [0,1] alpha.
func RGBA(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: byteOf(unit(a))}
}

func unit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func byteOf(v float64) uint8 { return uint8(math.Round(unit(v) * 255)) }

// Op is one recorded draw command.
type Op struct {
	Kind  string
	X, Y  float64
	W, H  float64
	R     float64
	Color color.NRGBA
	Text  string
	N     int
}

// Recorder is a Canvas that keeps a log of commands instead of drawing.
// The log is reset with Reset and grows otherwise.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func (r *Recorder) Fade(c color.NRGBA) { r.Ops = append(r.Ops, Op{Kind: "fade", Color: c}) }

func (r *Recorder) Rect(x, y, w, h float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: "rect", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DashedRect(x, y, w, h, _ float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: "dashed", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) Circle(x, y, rad float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: "circle", X: x, Y: y, R: rad, Color: c})
}

func (r *Recorder) Glow(x, y, rad float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: "glow", X: x, Y: y, R: rad, Color: c})
}

func (r *Recorder) Polyline(pts []Point, w float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: "polyline", W: w, N: len(pts), Color: c})
}

func (r *Recorder) Text(s string, x, y float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: "text", X: x, Y: y, Text: s, Color: c})
}

// Count returns how many recorded ops have kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
