package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/drift/core/param"
	"github.com/ingyamilmolinar/drift/core/surface"
	game_log "github.com/ingyamilmolinar/drift/internal/log"
)

const defaultTPS = 60

// currentTPS is swapped in tests.
var currentTPS = ebiten.TPS

// vizRatio is the share of the window height given to the scene.
const vizRatio = 0.45

// isFocused is swapped in tests; a window losing focus ends every drag.
var isFocused = ebiten.IsFocused

type Game struct {
	app    *surface.App
	logger *game_log.Logger

	header *Header
	knobs  []*Knob
	canvas *vizCanvas
	gate   *ActivationScreen

	winW, winH int
	vizRect    image.Rectangle
	frame      int64
}

// New builds the game around app. The app must already be started and the
// tick rate already set.
func New(app *surface.App, logger *game_log.Logger, w, h int) *Game {
	g := &Game{
		app:    app,
		logger: logger.With("ui"),
		gate:   NewActivationScreen(app.Activation, w, h, currentTPS()),
		header: NewHeader(app.Surface, w),
	}
	for _, id := range KnobIDs() {
		g.knobs = append(g.knobs, NewKnob(id))
	}
	g.layout(w, h)
	g.initJS()
	return g
}

func (g *Game) Layout(w, h int) (int, int) {
	if w != g.winW || h != g.winH {
		g.layout(w, h)
		g.logger.Infof("layout %dx%d, scene %v", w, h, g.vizRect)
	}
	return w, h
}

func (g *Game) layout(w, h int) {
	g.winW, g.winH = w, h
	g.gate.Layout(w, h)
	g.header.Layout(w)

	vizH := int(float64(h) * vizRatio)
	g.vizRect = image.Rect(0, headerH, w, headerH+vizH)
	if g.canvas == nil {
		g.canvas = newVizCanvas(w, vizH)
	} else {
		g.canvas.resize(w, vizH)
	}
	g.app.Surface.Engine.SetSize(float64(w), float64(vizH))

	// two rows of knobs under the scene
	top := g.vizRect.Max.Y
	rows := [][]*Knob{g.knobs[:(len(g.knobs)+1)/2], g.knobs[(len(g.knobs)+1)/2:]}
	rowH := float64(h-top) / float64(len(rows))
	r := rowH/2 - 22
	if r > 26 {
		r = 26
	}
	if r < 10 {
		r = 10
	}
	for ri, row := range rows {
		cy := float64(top) + rowH*(float64(ri)+0.5) + 2
		cell := float64(w) / float64(len(row))
		for i, k := range row {
			k.Place(cell*(float64(i)+0.5), cy, r)
		}
	}
}

func (g *Game) Update() error {
	g.app.Frame()
	g.frame++
	if !g.app.Activated() {
		g.gate.Update()
		return nil
	}
	g.handleSurface()
	g.reportStateJS()
	return nil
}

func (g *Game) knobAt(mx, my int) *Knob {
	for _, k := range g.knobs {
		if k.Hit(mx, my) {
			return k
		}
	}
	return nil
}

func (g *Game) handleSurface() {
	s := g.app.Surface
	mx, my := cursorPosition()
	left := isMouseButtonPressed(ebiten.MouseButtonLeft)

	consumed := g.header.Update()
	if !consumed && mouseJustPressed(ebiten.MouseButtonLeft) {
		if k := g.knobAt(mx, my); k != nil && k.Press(s, my) {
			g.logger.Debugf("drag %s from y=%d", k.ID, my)
		}
	}

	switch {
	case s.Capture.Active() == 0:
	case !isFocused():
		s.PointerUp()
	case left:
		s.PointerMove(float64(mx), float64(my))
	default:
		// released, or the release edge was missed outside the window
		s.PointerUp()
	}

	if _, dy := wheel(); dy != 0 {
		if k := g.knobAt(mx, my); k != nil {
			k.Scroll(s, dy)
		}
	}

	g.handleKeys(s)
}

func (g *Game) handleKeys(s *surface.Surface) {
	switch {
	case keyJustPressed(ebiten.KeyF):
		s.Toggle(param.Freeze)
	case keyJustPressed(ebiten.KeyB):
		s.Toggle(param.Bypass)
	case keyJustPressed(ebiten.KeyS):
		s.Toggle(param.Sync)
	case keyJustPressed(ebiten.KeyBracketLeft):
		s.StepDivision(-1)
	case keyJustPressed(ebiten.KeyBracketRight):
		s.StepDivision(1)
	}
}

/* ─────────────── Draw ─────────────────────────────────────────────────── */

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.app.Activated() {
		g.gate.Draw(screen)
		return
	}
	screen.Fill(colBG)
	g.drawScene(screen)
	g.header.Draw(screen)
	for _, k := range g.knobs {
		k.Draw(screen, g.app.Surface)
	}
}

func (g *Game) drawScene(screen *ebiten.Image) {
	g.app.Surface.Render(g.canvas)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(g.vizRect.Min.X), float64(g.vizRect.Min.Y))
	screen.DrawImage(g.canvas.Image(), &op)
}
