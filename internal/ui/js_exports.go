//go:build js && !test

package ui

import "syscall/js"

// initJS exposes helper functions for browser-based tests.
func (g *Game) initJS() {
	js.Global().Set("driftParam", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return js.Null()
		}
		b := g.app.Surface.Params.Get(args[0].String())
		if b == nil {
			return js.Null()
		}
		return js.ValueOf(b.Value())
	}))
	js.Global().Set("driftToggle", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return false
		}
		return js.ValueOf(g.app.Surface.Toggle(args[0].String()))
	}))
}

// reportStateJS publishes frame and telemetry counters for tests.
func (g *Game) reportStateJS() {
	js.Global().Set("__driftFrame", js.ValueOf(float64(g.frame)))
	js.Global().Set("__driftParticles", js.ValueOf(len(g.app.Surface.Engine.Particles())))
}
