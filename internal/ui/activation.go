package ui

import (
	"fmt"
	"image"
	"math"
	"strings"
	"unicode"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/drift/core/activation"
)

const licenseMaxLen = 32

// ActivationScreen renders the license gate shown before the surface
// mounts. It owns no state of its own beyond animation; every transition
// belongs to the controller's machine.
type ActivationScreen struct {
	ctrl   *activation.Controller
	input  *TextInput
	submit *Button
	retry  *Button

	spring   harmonica.Spring
	delay    int // entrance delay in ticks, 100 ms
	enter    float64
	enterVel float64
	frames   int
	spin     float64
	lastShow activation.Screen

	w, h int
}

// NewActivationScreen times its animations against tps ticks per second.
func NewActivationScreen(ctrl *activation.Controller, w, h, tps int) *ActivationScreen {
	if tps <= 0 {
		tps = defaultTPS
	}
	a := &ActivationScreen{
		ctrl:   ctrl,
		spring: harmonica.NewSpring(harmonica.FPS(tps), 6.0, 0.7),
		delay:  tps / 10,
	}
	a.input = NewTextInput(image.Rectangle{}, LicenseBoxStyle)
	a.input.Placeholder = "XXXX-XXXX-XXXX-XXXX"
	a.input.MaxLen = licenseMaxLen
	a.input.Filter = licenseRune
	a.input.OnSubmit = func(code string) { a.ctrl.Submit(code) }
	a.submit = NewButton("ACTIVATE", ActionButtonStyle, func() { a.ctrl.Submit(a.input.Value()) })
	a.retry = NewButton("TRY AGAIN", ActionButtonStyle, a.ctrl.Retry)
	a.Layout(w, h)
	return a
}

// licenseRune upper-cases letters and drops anything that cannot appear in
// a license key.
func licenseRune(r rune) rune {
	switch {
	case unicode.IsLetter(r) || unicode.IsDigit(r):
		return unicode.ToUpper(r)
	case r == '-':
		return r
	}
	return -1
}

func (a *ActivationScreen) Layout(w, h int) {
	a.w, a.h = w, h
	a.place()
}

// offset is the entrance slide in pixels.
func (a *ActivationScreen) offset() int { return int((1 - a.enter) * 24) }

func (a *ActivationScreen) place() {
	cx, cy := a.w/2, a.h/2+a.offset()
	a.input.Rect = image.Rect(cx-130, cy-12, cx+130, cy+14)
	a.submit.Rect = image.Rect(cx-60, cy+30, cx+60, cy+56)
	a.retry.Rect = a.submit.Rect
}

// Entrance is the eased entrance progress, 0 before it starts and
// settling at 1.
func (a *ActivationScreen) Entrance() float64 { return a.enter }

func (a *ActivationScreen) Update() {
	a.frames++
	if a.frames > a.delay {
		a.enter, a.enterVel = a.spring.Update(a.enter, a.enterVel, 1)
	}
	a.spin += 0.12
	a.place()

	m := a.ctrl.Machine()
	screen := m.Screen()
	if screen != a.lastShow {
		if screen == activation.Input {
			a.input.Focus()
		}
		if screen == activation.Error {
			a.input.Flash()
		}
		a.lastShow = screen
	}

	mx, my := cursorPosition()
	switch screen {
	case activation.Input:
		a.input.SetDisabled(false)
		a.input.Update()
		a.submit.SetDisabled(strings.TrimSpace(a.input.Value()) == "")
		a.submit.Handle(mx, my)
	case activation.Activating:
		a.input.SetDisabled(true)
		a.input.Update()
	case activation.Error:
		a.retry.Handle(mx, my)
		if keyJustPressed(ebiten.KeyEnter) {
			a.ctrl.Retry()
		}
	}
}

func (a *ActivationScreen) Draw(dst *ebiten.Image) {
	dst.Fill(colBG)
	if a.enter <= 0 {
		return
	}
	alpha := a.enter
	if alpha > 1 {
		alpha = 1
	}
	cx, cy := a.w/2, a.h/2+a.offset()

	panel := image.Rect(cx-170, cy-110, cx+170, cy+90)
	drawRect(dst, panel, fade(colPanel, alpha), true)
	drawRect(dst, panel, fade(colPanelEdge, alpha), false)
	drawTextCentered(dst, "DRIFT", cx, cy-80, fade(colText, alpha))

	m := a.ctrl.Machine()
	switch m.Screen() {
	case activation.Checking:
		a.drawSpinner(dst, float64(cx), float64(cy-20))
		drawTextCentered(dst, "Checking license...", cx, cy+20, fade(colTextDim, alpha))
	case activation.Input, activation.Activating:
		drawTextCentered(dst, "Enter your license key", cx, cy-30, fade(colTextDim, alpha))
		a.input.Draw(dst)
		if m.Screen() == activation.Activating {
			a.drawSpinner(dst, float64(cx), float64(cy+43))
		} else {
			a.submit.Draw(dst)
		}
	case activation.Success:
		drawTextCentered(dst, "Activated", cx, cy-30, fade(colSuccess, alpha))
		if info := m.Info(); info != nil {
			drawTextCentered(dst, info.ActivationCode, cx, cy-5, fade(colText, alpha))
			if info.MaxActivations > 0 {
				drawTextCentered(dst, fmt.Sprintf("%d of %d activations", info.CurrentActivations, info.MaxActivations),
					cx, cy+15, fade(colTextDim, alpha))
			}
		}
	case activation.Error:
		drawTextCentered(dst, m.Message(), cx, cy-10, fade(colError, alpha))
		a.retry.Draw(dst)
	}
}

func (a *ActivationScreen) drawSpinner(dst *ebiten.Image, x, y float64) {
	from := a.spin * 180 / math.Pi
	drawArc(dst, x, y, 10, from, from+90, 2, colAccent)
}
