package viz

import (
	"math"
	"testing"

	"github.com/ingyamilmolinar/drift/core/telemetry"
)

func busy() telemetry.Frame {
	return telemetry.Frame{
		InputLevel:    0.8,
		GrainActivity: 1,
		TapLevels:     [telemetry.Taps]float64{0.9, 0.6, 0.3, 0.01},
		OutputLevel:   0.7,
	}
}

func TestPopulationNeverExceedsCap(t *testing.T) {
	e := New(0, 0, 1)
	for i := 0; i < 500; i++ {
		e.Tick(busy(), Params{SizeScale: 1, Taps: 4})
		if n := len(e.Particles()); n > MaxParticles {
			t.Fatalf("tick %d: %d particles", i, n)
		}
	}
	if len(e.Particles()) == 0 {
		t.Fatalf("busy input should keep particles alive")
	}
}

func TestSpawnRateFollowsActivity(t *testing.T) {
	quiet := New(0, 0, 1)
	quiet.Tick(telemetry.Frame{}, Params{})
	if n := len(quiet.Particles()); n != 1 {
		t.Fatalf("silence should spawn one particle, got %d", n)
	}
	loud := New(0, 0, 1)
	loud.Tick(telemetry.Frame{GrainActivity: 1}, Params{})
	// smoothed activity is 0.35 after one tick
	if n := len(loud.Particles()); n != 2 {
		t.Fatalf("expected 2 particles, got %d", n)
	}
	fallback := New(0, 0, 1)
	fallback.Tick(telemetry.Frame{InputLevel: 1}, Params{})
	if n := len(fallback.Particles()); n != 2 {
		t.Fatalf("input level should stand in for grain activity, got %d", n)
	}
}

func TestLifeStrictlyDecreasesUntilCulled(t *testing.T) {
	e := New(0, 0, 2)
	e.Tick(telemetry.Frame{}, Params{})
	first := e.Particles()[0]
	prev := first.Life
	for i := 0; i < 200; i++ {
		e.Tick(telemetry.Frame{}, Params{})
		ps := e.Particles()
		if len(ps) == 0 || ps[0].Hue != first.Hue || ps[0].Size != first.Size {
			// culled: oldest particle gone from the front
			if prev > lifeDecay+1e-9 {
				t.Fatalf("culled with life %v left", prev)
			}
			return
		}
		if ps[0].Life >= prev {
			t.Fatalf("life did not decrease: %v -> %v", prev, ps[0].Life)
		}
		prev = ps[0].Life
	}
	t.Fatalf("particle was never culled")
}

func TestFreezeHoldsPositionsAndSlowsDecay(t *testing.T) {
	e := New(0, 0, 3)
	for i := 0; i < 10; i++ {
		e.Tick(busy(), Params{Taps: 2})
	}
	before := append([]Particle(nil), e.Particles()...)
	e.Tick(busy(), Params{Taps: 2, Freeze: true})
	after := e.Particles()
	if !e.Frozen() {
		t.Fatalf("freeze param ignored")
	}
	for i := range before {
		if math.Abs(after[i].X-before[i].X) > 1e-12 || math.Abs(after[i].Y-before[i].Y) > 1e-12 {
			t.Fatalf("particle %d moved while frozen", i)
		}
		if d := before[i].Life - after[i].Life; math.Abs(d-frozenLifeDecay) > 1e-12 {
			t.Fatalf("particle %d life fell by %v, want %v", i, d, frozenLifeDecay)
		}
	}

	f := busy()
	f.IsFrozen = true
	op := e.RibbonOpacity(0)
	e.Tick(f, Params{Taps: 2})
	if got := e.RibbonOpacity(0); math.Abs(got-op*frozenFade) > 1e-12 {
		t.Fatalf("ribbon opacity %v, want %v", got, op*frozenFade)
	}
}

func TestRibbonOpacityTargets(t *testing.T) {
	e := New(0, 0, 4)
	for i := 0; i < 100; i++ {
		e.Tick(busy(), Params{Taps: 2})
	}
	if e.RibbonOpacity(0) < 0.9 || e.RibbonOpacity(1) < 0.9 {
		t.Fatalf("active taps did not fade in: %v %v", e.RibbonOpacity(0), e.RibbonOpacity(1))
	}
	if e.RibbonOpacity(2) > 0.01 {
		t.Fatalf("tap beyond the taps count is visible: %v", e.RibbonOpacity(2))
	}
	e2 := New(0, 0, 4)
	for i := 0; i < 100; i++ {
		e2.Tick(busy(), Params{Taps: 4})
	}
	if e2.RibbonOpacity(3) > 0.01 {
		t.Fatalf("tap under the noise floor is visible: %v", e2.RibbonOpacity(3))
	}
}

func TestRenderDrawsLayers(t *testing.T) {
	e := New(0, 0, 5)
	var rec Recorder
	for i := 0; i < 30; i++ {
		e.Tick(busy(), Params{Taps: 3, Shimmer: 80})
	}
	e.Render(&rec)
	if rec.Ops[0].Kind != "fade" {
		t.Fatalf("first op should fade the previous frame, got %s", rec.Ops[0].Kind)
	}
	if got := rec.Count("polyline"); got != duneLayers+3 {
		t.Fatalf("expected %d polylines, got %d", duneLayers+3, got)
	}
	if rec.Count("rect") != 2 {
		t.Fatalf("output meter missing")
	}
	if rec.Count("dashed") != 0 || rec.Count("text") != 0 {
		t.Fatalf("frozen overlay drawn while running")
	}
	if rec.Count("circle") == 0 {
		t.Fatalf("shimmer halo missing")
	}

	rec.Reset()
	f := busy()
	f.IsFrozen = true
	e.Tick(f, Params{Taps: 3})
	e.Render(&rec)
	if rec.Count("dashed") != 1 || rec.Count("text") != 1 {
		t.Fatalf("frozen overlay missing")
	}
}

func TestMalformedTelemetryIsHarmless(t *testing.T) {
	e := New(-1, math.NaN(), 6)
	bad := telemetry.Frame{InputLevel: math.NaN(), DuckEnvelope: math.Inf(1), CurrentPitch: math.NaN()}
	for i := 0; i < 50; i++ {
		e.Tick(bad, Params{SizeScale: math.NaN(), Shimmer: math.Inf(-1), Taps: -3})
	}
	var rec Recorder
	e.Render(&rec)
	for _, p := range e.Particles() {
		if math.IsNaN(p.X) || math.IsNaN(p.Size) || math.IsNaN(p.Hue) {
			t.Fatalf("NaN leaked into particle %+v", p)
		}
	}
	if w, h := e.Size(); w != DefaultWidth || h != DefaultHeight {
		t.Fatalf("bad size not replaced: %v x %v", w, h)
	}
}

func TestHSLA(t *testing.T) {
	cases := []struct {
		h, s, l float64
		r, g, b uint8
	}{
		{0, 1, 0.5, 255, 0, 0},
		{120, 1, 0.5, 0, 255, 0},
		{240, 1, 0.5, 0, 0, 255},
		{-120, 1, 0.5, 0, 0, 255},
		{180, 0, 1, 255, 255, 255},
	}
	for _, c := range cases {
		got := HSLA(c.h, c.s, c.l, 1)
		if got.R != c.r || got.G != c.g || got.B != c.b || got.A != 255 {
			t.Fatalf("HSLA(%v,%v,%v) = %+v", c.h, c.s, c.l, got)
		}
	}
}
