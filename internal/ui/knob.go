package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/drift/core/gesture"
	"github.com/ingyamilmolinar/drift/core/param"
	"github.com/ingyamilmolinar/drift/core/surface"
)

// Knob is a rotary control for one continuous parameter. Input is routed
// through the surface so gestures, tempo lock and capture stay in one place.
type Knob struct {
	ID     string
	CX, CY float64
	R      float64
}

func NewKnob(id string) *Knob { return &Knob{ID: id, R: 22} }

// Place centres the knob at (cx, cy).
func (k *Knob) Place(cx, cy, r float64) {
	k.CX, k.CY, k.R = cx, cy, r
}

// Rect is the knob's hit area, including its labels.
func (k *Knob) Rect() image.Rectangle {
	return image.Rect(int(k.CX-k.R-8), int(k.CY-k.R-18), int(k.CX+k.R+8), int(k.CY+k.R+20))
}

func (k *Knob) Hit(mx, my int) bool { return image.Pt(mx, my).In(k.Rect()) }

// Press starts a drag at pointer y. It reports whether the surface
// accepted it.
func (k *Knob) Press(s *surface.Surface, my int) bool {
	return s.BeginDrag(k.ID, float64(my))
}

// Scroll applies an Ebiten wheel dy, where positive is wheel-up.
func (k *Knob) Scroll(s *surface.Surface, dy float64) bool {
	return s.Wheel(k.ID, -dy)
}

func (k *Knob) disabled(s *surface.Surface) bool {
	return k.ID == param.Time && s.Synced()
}

func (k *Knob) valueLabel(s *surface.Surface, b *param.Binding) string {
	if k.ID == param.Time {
		return s.TimeLabel()
	}
	return b.Spec().Format(b.Value())
}

func (k *Knob) Draw(dst *ebiten.Image, s *surface.Surface) {
	b := s.Params.Get(k.ID)
	if b == nil {
		return
	}
	spec := b.Spec()
	active := colAccent
	if k.disabled(s) {
		active = colDisabled
	} else if s.Capture.Held(k.ID) {
		active = colText
	}

	drawArc(dst, k.CX, k.CY, k.R, gesture.ArcStart, gesture.ArcStart+gesture.ArcSweep, 3, colTrack)
	n := b.Normalized()
	from, to := gesture.Arc(n, spec.Bipolar)
	if to > from {
		drawArc(dst, k.CX, k.CY, k.R, from, to, 3, active)
	}
	drawCircle(dst, k.CX, k.CY, k.R-6, colPanel)
	ix, iy := arcPoint(k.CX, k.CY, k.R-8, gesture.Angle(n))
	drawLine(dst, k.CX, k.CY, ix, iy, 2, active)

	cx := int(k.CX)
	drawTextCentered(dst, spec.Label, cx, int(k.CY-k.R-6), colTextDim)
	drawTextCentered(dst, k.valueLabel(s, b), cx, int(k.CY+k.R+16), colText)
}

// KnobIDs lists the continuous parameters in panel order.
func KnobIDs() []string {
	var ids []string
	for _, spec := range param.Catalog() {
		if spec.Kind == param.KindSlider {
			ids = append(ids, spec.ID)
		}
	}
	return ids
}
