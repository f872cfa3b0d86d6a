package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// ButtonStyle describes rectangular button visuals.
type ButtonStyle struct {
	Fill   color.Color
	Border color.Color
	Text   color.Color
}

// Draw renders the button rectangle using the global drawButton primitive.
func (s ButtonStyle) Draw(dst *ebiten.Image, r image.Rectangle, pressed bool) {
	drawButton(dst, r, s.Fill, s.Border, pressed)
}

// ToggleStyle styles a latching button; Active is the fill while on.
type ToggleStyle struct {
	Off    color.Color
	Active color.RGBA
	Border color.Color
}

// Draw renders the toggle, blending its fill toward Active by glow.
func (s ToggleStyle) Draw(dst *ebiten.Image, r image.Rectangle, on bool, glow float64) {
	drawRect(dst, r, s.Off, true)
	if glow > 0 {
		drawRect(dst, r, fade(s.Active, glow), true)
	}
	border := s.Border
	if on {
		border = s.Active
	}
	drawRect(dst, r, border, false)
}

// TextInputStyle styles a text input box.
type TextInputStyle struct {
	Fill   color.Color
	Border color.Color
	Focus  color.RGBA
	Error  color.RGBA
}

// Draw renders the text box using drawButton for consistency.
func (s TextInputStyle) Draw(dst *ebiten.Image, r image.Rectangle, focused bool) {
	drawButton(dst, r, s.Fill, s.Border, false)
	if focused {
		drawRect(dst, r, s.Focus, false)
	}
}

// DrawAnimated blends the focus ring in by anim and flashes the error
// colour by errAnim, both in [0,1].
func (s TextInputStyle) DrawAnimated(dst *ebiten.Image, r image.Rectangle, anim, errAnim float64) {
	drawButton(dst, r, s.Fill, s.Border, false)
	if anim > 0 {
		drawRect(dst, r.Inset(-1), fade(s.Focus, anim), false)
	}
	if errAnim > 0 {
		drawRect(dst, r, fade(s.Error, errAnim), false)
		drawRect(dst, r.Inset(-1), fade(s.Error, errAnim), false)
	}
}

var (
	ActionButtonStyle = ButtonStyle{Fill: colAccent, Border: colButtonBorder, Text: colBG}
	StepButtonStyle   = ButtonStyle{Fill: colPanel, Border: colPanelEdge, Text: colText}
	FreezeStyle       = ToggleStyle{Off: colPanel, Active: colFreeze, Border: colPanelEdge}
	BypassStyle       = ToggleStyle{Off: colPanel, Active: colBypass, Border: colPanelEdge}
	SyncStyle         = ToggleStyle{Off: colPanel, Active: colAccent, Border: colPanelEdge}
	LicenseBoxStyle   = TextInputStyle{Fill: colPanel, Border: colPanelEdge, Focus: colAccent, Error: colError}
)

// Button is a clickable rectangle. Clicks fire on release inside the
// rectangle after a press that started inside it.
type Button struct {
	Rect    image.Rectangle
	Label   string
	Style   ButtonStyle
	OnClick func()

	pressed  bool
	disabled bool
}

func NewButton(label string, style ButtonStyle, onClick func()) *Button {
	return &Button{Label: label, Style: style, OnClick: onClick}
}

func (b *Button) SetDisabled(d bool) {
	b.disabled = d
	if d {
		b.pressed = false
	}
}

func (b *Button) Disabled() bool { return b.disabled }

// Handle processes one frame of pointer input and reports whether the
// button consumed it.
func (b *Button) Handle(mx, my int) bool {
	if b.disabled {
		return false
	}
	in := image.Pt(mx, my).In(b.Rect)
	if mouseJustPressed(ebiten.MouseButtonLeft) && in {
		b.pressed = true
		return true
	}
	if b.pressed && mouseJustReleased(ebiten.MouseButtonLeft) {
		b.pressed = false
		if in && b.OnClick != nil {
			b.OnClick()
		}
		return true
	}
	return b.pressed
}

func (b *Button) Draw(dst *ebiten.Image) {
	if b.disabled {
		drawButton(dst, b.Rect, colPanel, colDisabled, false)
		drawTextCentered(dst, b.Label, (b.Rect.Min.X+b.Rect.Max.X)/2, b.Rect.Max.Y-b.Rect.Dy()/2+4, colDisabled)
		return
	}
	b.Style.Draw(dst, b.Rect, b.pressed)
	drawTextCentered(dst, b.Label, (b.Rect.Min.X+b.Rect.Max.X)/2, b.Rect.Max.Y-b.Rect.Dy()/2+4, b.Style.Text)
}
