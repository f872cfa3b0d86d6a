// Package viz is the audio-reactive scene: a bounded particle field over
// drifting dunes, with one echo ribbon per delay tap.
package viz

import (
	"math"
	"math/rand"

	"github.com/ingyamilmolinar/drift/core/envelope"
	"github.com/ingyamilmolinar/drift/core/telemetry"
	"github.com/ingyamilmolinar/drift/internal/utils"
)

const (
	// ClockStep is the nominal clock advance per tick.
	ClockStep = 0.016

	lifeDecay       = 0.015
	frozenLifeDecay = 0.002
	upwardBias      = 0.02
	frozenFade      = 0.995

	dunePoints   = 48
	ribbonPoints = 64
	duneLayers   = 3

	DefaultWidth  = 460
	DefaultHeight = 180
)

// Params are the parameter values the scene reacts to.
type Params struct {
	// SizeScale in [0,1] scales particle size.
	SizeScale float64
	// Shimmer in [0,100] adds sparkle to particles.
	Shimmer float64
	// Taps is the number of active echo taps.
	Taps int
	// Freeze is the parameter state; telemetry may also report it.
	Freeze bool
}

// Engine holds the persistent scene state. It is not safe for concurrent
// use and allocates nothing after construction.
type Engine struct {
	w, h  float64
	rng   *rand.Rand
	clock float64

	input, grain, output envelope.Follower
	drift                envelope.Follower
	taps                 envelope.Bank
	opacity              envelope.Bank

	pitch   float64
	shimmer float64
	frozen  bool

	particles pool
	pts       [ribbonPoints]Point
}

// New builds an engine with a seeded generator so runs are reproducible.
func New(w, h float64, seed int64) *Engine {
	e := &Engine{rng: rand.New(rand.NewSource(seed))}
	e.SetSize(w, h)
	e.Reset()
	return e
}

// SetSize changes the scene dimensions. Non-positive sizes keep the
// defaults.
func (e *Engine) SetSize(w, h float64) {
	if !(w > 0) {
		w = DefaultWidth
	}
	if !(h > 0) {
		h = DefaultHeight
	}
	e.w, e.h = w, h
}

func (e *Engine) Size() (float64, float64) { return e.w, e.h }

// Reset clears particles and envelopes, as a remount does.
func (e *Engine) Reset() {
	e.clock = 0
	e.input = envelope.NewLevel()
	e.grain = envelope.NewLevel()
	e.output = envelope.NewLevel()
	e.drift = envelope.NewSymmetric(envelope.DriftRate)
	e.taps = envelope.NewBank(telemetry.Taps, envelope.NewLevel())
	e.opacity = envelope.NewBank(telemetry.Taps, envelope.NewOpacity())
	e.pitch, e.shimmer, e.frozen = 0, 0, false
	e.particles.reset()
}

// Tick advances the scene one step from the newest telemetry frame.
func (e *Engine) Tick(f telemetry.Frame, p Params) {
	e.clock += ClockStep

	e.input.Next(f.InputLevel)
	e.grain.Next(f.GrainActivity)
	e.output.Next(f.OutputLevel)
	e.drift.Next(f.DuckEnvelope)
	for i := range e.taps {
		e.taps[i].Next(f.TapLevels[i])
	}
	e.pitch = utils.Finite(f.CurrentPitch)
	e.shimmer = utils.Clamp(p.Shimmer, 0, 100)
	e.frozen = f.IsFrozen || p.Freeze

	e.spawn(utils.Clamp(p.SizeScale, 0, 1))
	e.integrate()
	e.updateRibbons(p.Taps)
}

// Activity drives the spawn rate and the centre glow. Grain activity is
// preferred; a host that reports none falls back to the input level.
func (e *Engine) Activity() float64 {
	if e.grain.Current > envelope.NoiseFloor {
		return utils.Clamp(e.grain.Current, 0, 1)
	}
	return utils.Clamp(e.input.Current, 0, 1)
}

func (e *Engine) baseHue() float64 { return 180 + e.pitch/24*60 }

func (e *Engine) spawn(sizeScale float64) {
	n := int(math.Floor(e.Activity()*5)) + 1
	hue := e.baseHue()
	for i := 0; i < n && !e.particles.full(); i++ {
		e.particles.add(Particle{
			X:     e.w/2 + (e.rng.Float64()-0.5)*100,
			Y:     e.h/2 + (e.rng.Float64()-0.5)*50,
			VX:    (e.rng.Float64() - 0.5) * 2,
			VY:    (e.rng.Float64()-0.5)*2 - 1,
			Size:  2 + e.rng.Float64()*sizeScale*8,
			Alpha: 0.8,
			Hue:   hue + (e.rng.Float64()-0.5)*30,
			Life:  1,
		})
	}
}

func (e *Engine) integrate() {
	decay := lifeDecay
	if e.frozen {
		decay = frozenLifeDecay
	}
	live := e.particles.live()
	for i := range live {
		p := &live[i]
		if !e.frozen {
			p.X += p.VX
			p.Y += p.VY
			p.VY -= upwardBias
		}
		p.Life -= decay
		p.Alpha = p.Life * (0.6 + e.sparkle(p.X))
	}
	e.particles.cull()
}

func (e *Engine) sparkle(x float64) float64 {
	if e.shimmer <= 0 {
		return 0
	}
	return math.Sin(e.clock*10+x) * e.shimmer / 200
}

func (e *Engine) updateRibbons(taps int) {
	for i := range e.opacity {
		o := &e.opacity[i]
		if e.frozen {
			o.Current *= frozenFade
			continue
		}
		target := 0.0
		if i < taps && e.taps[i].Current > envelope.NoiseFloor {
			target = 1
		}
		o.Next(target)
	}
}

// Particles returns the live particles. The slice aliases engine state
// and is only valid until the next Tick.
func (e *Engine) Particles() []Particle { return e.particles.live() }

func (e *Engine) Clock() float64 { return e.clock }

func (e *Engine) Frozen() bool { return e.frozen }

// Drift is the smoothed drift/duck value.
func (e *Engine) Drift() float64 { return e.drift.Current }

// TapLevel is the smoothed level of tap i.
func (e *Engine) TapLevel(i int) float64 { return e.taps.Value(i) }

// RibbonOpacity is the opacity envelope of tap i.
func (e *Engine) RibbonOpacity(i int) float64 { return e.opacity.Value(i) }

// OutputLevel is the smoothed output meter value.
func (e *Engine) OutputLevel() float64 { return e.output.Current }
