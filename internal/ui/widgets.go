package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

/* ------------------------------------------------------------------
   cache 1×1 images per colour
   ------------------------------------------------------------------ */

var pixelCache = map[string]*ebiten.Image{}

func key(c color.Color) string {
	r, g, b, a := c.RGBA()
	return fmt.Sprintf("%d_%d_%d_%d", r, g, b, a)
}

func pixel(c color.Color) *ebiten.Image {
	k := key(c)
	if img, ok := pixelCache[k]; ok {
		return img
	}
	img := ebiten.NewImage(1, 1)
	img.Fill(c)
	pixelCache[k] = img
	return img
}

var segOpt ebiten.DrawImageOptions

// drawSegment draws a hard-edged line by stretching a cached pixel. It is
// cheaper than vector strokes for the many short dashes of frame borders.
func drawSegment(dst *ebiten.Image, x1, y1, x2, y2 float64, col color.Color, thick float64) {
	if thick <= 0 {
		thick = 1
	}
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	segOpt.GeoM.Reset()
	segOpt.GeoM.Scale(length, thick)
	segOpt.GeoM.Rotate(math.Atan2(dy, dx))
	segOpt.GeoM.Translate(x1, y1)
	dst.DrawImage(pixel(col), &segOpt)
}

// drawDashed draws a dashed line of dash-length segments and equal gaps.
func drawDashed(dst *ebiten.Image, x1, y1, x2, y2, dash float64, col color.Color) {
	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 || dash <= 0 {
		drawSegment(dst, x1, y1, x2, y2, col, 1)
		return
	}
	ux, uy := (x2-x1)/length, (y2-y1)/length
	for d := 0.0; d < length; d += dash * 2 {
		e := math.Min(d+dash, length)
		drawSegment(dst, x1+ux*d, y1+uy*d, x1+ux*e, y1+uy*e, col, 1)
	}
}
