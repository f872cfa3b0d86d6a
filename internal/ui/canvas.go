package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ingyamilmolinar/drift/core/viz"
)

// vizCanvas draws the scene into a persistent offscreen image so the
// translucent fade each frame leaves trails.
type vizCanvas struct {
	img  *ebiten.Image
	w, h int
}

var _ viz.Canvas = (*vizCanvas)(nil)

func newVizCanvas(w, h int) *vizCanvas {
	c := &vizCanvas{}
	c.resize(w, h)
	return c
}

func (c *vizCanvas) resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if c.img != nil && c.w == w && c.h == h {
		return
	}
	if c.img != nil {
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(w, h)
	c.img.Fill(colBG)
	c.w, c.h = w, h
}

func (c *vizCanvas) Image() *ebiten.Image { return c.img }

func (c *vizCanvas) Fade(col color.NRGBA) {
	vector.DrawFilledRect(c.img, 0, 0, float32(c.w), float32(c.h), col, false)
}

func (c *vizCanvas) Rect(x, y, w, h float64, col color.NRGBA) {
	vector.DrawFilledRect(c.img, float32(x), float32(y), float32(w), float32(h), col, false)
}

func (c *vizCanvas) DashedRect(x, y, w, h, dash float64, col color.NRGBA) {
	drawDashed(c.img, x, y, x+w, y, dash, col)
	drawDashed(c.img, x+w, y, x+w, y+h, dash, col)
	drawDashed(c.img, x+w, y+h, x, y+h, dash, col)
	drawDashed(c.img, x, y+h, x, y, dash, col)
}

func (c *vizCanvas) Circle(x, y, r float64, col color.NRGBA) {
	if r <= 0 {
		return
	}
	vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(r), col, true)
}

// Glow approximates a radial gradient with stacked circles whose alpha
// adds up to the colour's alpha at the centre.
func (c *vizCanvas) Glow(x, y, r float64, col color.NRGBA) {
	const rings = 6
	if r <= 0 {
		return
	}
	ring := col
	ring.A = uint8(float64(col.A) / rings)
	for i := rings; i >= 1; i-- {
		vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(r*float64(i)/rings), ring, true)
	}
}

func (c *vizCanvas) Polyline(pts []viz.Point, width float64, col color.NRGBA) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(c.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), col, true)
	}
}

func (c *vizCanvas) Text(s string, x, y float64, col color.NRGBA) {
	drawTextCentered(c.img, s, int(x), int(y), col)
}
