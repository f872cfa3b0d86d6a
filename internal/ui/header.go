package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/drift/core/beat"
	"github.com/ingyamilmolinar/drift/core/param"
	"github.com/ingyamilmolinar/drift/core/surface"
)

const headerH = 44

type toggleButton struct {
	id    string
	label string
	rect  image.Rectangle
	style ToggleStyle
	glow  float64
}

// Header is the top bar: title, tempo sync with its division stepper and
// beat light, and the freeze and bypass latches.
type Header struct {
	toggles  []*toggleButton
	prevDiv  *Button
	nextDiv  *Button
	divRect  image.Rectangle
	ledRect  image.Rectangle
	width    int
	beatSeen int
	beatAnim float64
	surface  *surface.Surface
}

func NewHeader(s *surface.Surface, w int) *Header {
	h := &Header{
		surface: s,
		toggles: []*toggleButton{
			{id: param.Sync, label: "SYNC", style: SyncStyle},
			{id: param.Freeze, label: "FREEZE", style: FreezeStyle},
			{id: param.Bypass, label: "BYPASS", style: BypassStyle},
		},
		prevDiv: NewButton("<", StepButtonStyle, func() { s.StepDivision(-1) }),
		nextDiv: NewButton(">", StepButtonStyle, func() { s.StepDivision(1) }),
	}
	h.Layout(w)
	return h
}

// Layout places the bar's controls for a window of width w.
func (h *Header) Layout(w int) {
	h.width = w
	y0, y1 := 10, headerH-10
	x := 90
	sync := h.toggles[0]
	sync.rect = image.Rect(x, y0, x+52, y1)
	x += 60
	h.prevDiv.Rect = image.Rect(x, y0, x+20, y1)
	x += 24
	h.divRect = image.Rect(x, y0, x+48, y1)
	x += 52
	h.nextDiv.Rect = image.Rect(x, y0, x+20, y1)
	x += 28
	h.ledRect = image.Rect(x, y0+6, x+12, y1-6)

	right := w - 10
	for i := len(h.toggles) - 1; i >= 1; i-- {
		t := h.toggles[i]
		t.rect = image.Rect(right-64, y0, right, y1)
		right -= 72
	}
}

// Update handles one frame of input and reports whether the pointer was
// consumed.
func (h *Header) Update() bool {
	mx, my := cursorPosition()
	synced := h.surface.Synced()
	h.prevDiv.SetDisabled(!synced)
	h.nextDiv.SetDisabled(!synced)

	consumed := false
	if mouseJustPressed(ebiten.MouseButtonLeft) {
		for _, t := range h.toggles {
			if image.Pt(mx, my).In(t.rect) {
				h.surface.Toggle(t.id)
				consumed = true
			}
		}
	}
	if h.prevDiv.Handle(mx, my) {
		consumed = true
	}
	if h.nextDiv.Handle(mx, my) {
		consumed = true
	}

	for _, t := range h.toggles {
		target := 0.0
		if h.surface.Params.On(t.id) {
			target = 0.35
		}
		t.glow += (target - t.glow) * 0.3
	}

	if n := h.surface.Beats(); n != h.beatSeen {
		h.beatSeen = n
		h.beatAnim = 1
	}
	h.beatAnim *= 0.85
	if h.beatAnim < 0.01 {
		h.beatAnim = 0
	}
	return consumed
}

func (h *Header) Draw(dst *ebiten.Image) {
	drawRect(dst, image.Rect(0, 0, h.width, headerH), colPanel, true)
	drawRect(dst, image.Rect(0, headerH-1, h.width, headerH), colPanelEdge, true)
	drawText(dst, "DRIFT", 14, headerH/2+5, colText)

	for _, t := range h.toggles {
		on := h.surface.Params.On(t.id)
		t.style.Draw(dst, t.rect, on, t.glow)
		c := colTextDim
		if on {
			c = colText
		}
		drawTextCentered(dst, t.label, (t.rect.Min.X+t.rect.Max.X)/2, t.rect.Max.Y-t.rect.Dy()/2+4, c)
	}

	h.prevDiv.Draw(dst)
	h.nextDiv.Draw(dst)
	div := beat.At(h.surface.Params.Get(param.Division).Index()).Name
	c := colText
	if !h.surface.Synced() {
		c = colDisabled
	}
	drawRect(dst, h.divRect, colBG, true)
	drawTextCentered(dst, div, (h.divRect.Min.X+h.divRect.Max.X)/2, h.divRect.Max.Y-h.divRect.Dy()/2+4, c)

	drawRect(dst, h.ledRect, colTrack, true)
	if h.beatAnim > 0 {
		drawRect(dst, h.ledRect, fade(colAccent, h.beatAnim), true)
	}
}
