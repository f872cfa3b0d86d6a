package viz

import "math"

// Render draws the current state. It draws only; it never advances the
// scene.
func (e *Engine) Render(c Canvas) {
	if e.frozen {
		c.Fade(RGBA(10, 20, 30, 0.05))
	} else {
		c.Fade(RGBA(13, 13, 26, 0.1))
	}
	e.drawDunes(c)
	e.drawRibbons(c)
	e.drawParticles(c)
	e.drawGlow(c)
	if e.frozen {
		e.drawFrozen(c)
	}
	e.drawMeter(c)
}

func (e *Engine) drawDunes(c Canvas) {
	d := e.drift.Current
	pts := e.pts[:dunePoints]
	for layer := 0; layer < duneLayers; layer++ {
		l := float64(layer)
		base := e.h * (0.62 + 0.1*l)
		amp := e.h * (0.06 + 0.02*l) * (1 + d)
		freq := (1.5 + 0.7*l) * 2 * math.Pi / e.w
		phase := e.clock*(0.4+0.15*l) + d*2 + l
		for i := range pts {
			x := e.w * float64(i) / float64(dunePoints-1)
			pts[i] = Point{X: x, Y: base + math.Sin(x*freq+phase)*amp}
		}
		c.Polyline(pts, 2, HSLA(200+l*12+d*20, 0.45, 0.3+0.08*l, 0.25+0.1*l))
	}
}

func (e *Engine) drawRibbons(c Canvas) {
	pts := e.pts[:ribbonPoints]
	for i := range e.opacity {
		op := e.opacity[i].Current
		if op < 0.01 {
			continue
		}
		lvl := e.taps[i].Current
		fi := float64(i)
		mid := e.h*0.5 + (fi-1.5)*e.h*0.08
		amp := lvl * e.h * 0.25
		wave := (2 + fi) * 2 * math.Pi / e.w
		phase := e.clock*(1.2-0.2*fi) + e.drift.Current
		for k := range pts {
			x := e.w * float64(k) / float64(ribbonPoints-1)
			// taper toward both edges
			env := math.Sin(math.Pi * float64(k) / float64(ribbonPoints-1))
			pts[k] = Point{X: x, Y: mid + math.Sin(x*wave+phase)*amp*env}
		}
		c.Polyline(pts, 1+lvl*3, HSLA(190+fi*25, 0.8, 0.6, op*(0.25+0.5*lvl)))
	}
}

func (e *Engine) drawParticles(c Canvas) {
	for _, p := range e.particles.live() {
		if p.Alpha <= 0 {
			continue
		}
		c.Glow(p.X, p.Y, p.Size, HSLA(p.Hue, 0.8, 0.7, p.Alpha))
		if e.shimmer > 30 {
			c.Circle(p.X, p.Y, p.Size*2, HSLA(p.Hue, 0.9, 0.8, p.Alpha*0.2*e.shimmer/100))
		}
	}
}

func (e *Engine) drawGlow(c Canvas) {
	intensity := e.Activity() * 0.4
	if e.frozen {
		intensity = 0.3
	}
	c.Glow(e.w/2, e.h/2, 80, HSLA(e.baseHue(), 0.7, 0.6, intensity))
}

func (e *Engine) drawFrozen(c Canvas) {
	c.DashedRect(10, 10, e.w-20, e.h-20, 5, RGBA(100, 200, 255, 0.5))
	c.Text("FROZEN", e.w/2, e.h-15, RGBA(100, 200, 255, 0.8))
}

func (e *Engine) drawMeter(c Canvas) {
	out := math.Max(0, math.Min(1, e.output.Current))
	mh := e.h * 0.6
	my := (e.h - mh) / 2
	c.Rect(e.w-8, my, 4, mh, RGBA(255, 255, 255, 0.1))
	c.Rect(e.w-8, my+mh*(1-out), 4, mh*out, HSLA(180+out*60, 0.8, 0.6, 0.6))
}
