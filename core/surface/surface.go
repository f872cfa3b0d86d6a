// Package surface composes the mounted control surface: parameter
// bindings, telemetry, the scene and pointer capture, all driven by one
// event loop.
package surface

import (
	"fmt"

	"github.com/ingyamilmolinar/drift/core/beat"
	"github.com/ingyamilmolinar/drift/core/gesture"
	"github.com/ingyamilmolinar/drift/core/loop"
	"github.com/ingyamilmolinar/drift/core/param"
	"github.com/ingyamilmolinar/drift/core/telemetry"
	"github.com/ingyamilmolinar/drift/core/viz"
	"github.com/ingyamilmolinar/drift/internal/bridge"
	game_log "github.com/ingyamilmolinar/drift/internal/log"
)

type Options struct {
	Width, Height float64
	Seed          int64
	DragDivisor   float64
	BPM           float64
}

type Surface struct {
	ch     bridge.Channel
	loop   *loop.Loop
	logger *game_log.Logger
	opts   Options

	Params    *param.Set
	Capture   *gesture.Capture
	Engine    *viz.Engine
	Metronome *beat.Metronome

	latest telemetry.Latest
	synth  *bridge.Synthetic
	task   *loop.Task
	unsubs []func()
	beats  int
}

func New(ch bridge.Channel, lp *loop.Loop, logger *game_log.Logger, opts Options) *Surface {
	if opts.DragDivisor <= 0 {
		opts.DragDivisor = gesture.DragDivisor
	}
	if opts.BPM <= 0 {
		opts.BPM = 120
	}
	s := &Surface{
		ch:        ch,
		loop:      lp,
		logger:    logger.With("surface"),
		opts:      opts,
		Params:    param.NewSet(param.Catalog(), ch, logger),
		Capture:   gesture.NewCapture(),
		Engine:    viz.New(opts.Width, opts.Height, opts.Seed),
		Metronome: beat.NewMetronome(opts.BPM),
	}
	s.Metronome.OnBeat = func(int) { s.beats++ }
	return s
}

// AttachSynthetic makes the surface drive a stand-in host: it is seeded
// with every parameter and ticked once per frame.
func (s *Surface) AttachSynthetic(h *bridge.Synthetic) {
	s.synth = h
	if h != nil {
		param.Declare(h, param.Catalog())
	}
}

func (s *Surface) Mounted() bool { return s.task != nil }

// Mount subscribes everything to the host and starts the frame task.
func (s *Surface) Mount() {
	if s.Mounted() {
		return
	}
	s.Engine.Reset()
	s.Params.Mount()
	s.unsubs = append(s.unsubs, telemetry.Subscribe(s.ch, &s.latest))
	if b := s.Params.Get(param.Division); b != nil {
		s.unsubs = append(s.unsubs, b.OnChange(func(v float64) { s.Metronome.Division = int(v) }))
		s.Metronome.Division = b.Index()
	}
	if b := s.Params.Get(param.Sync); b != nil {
		s.unsubs = append(s.unsubs, b.OnChange(func(float64) { s.syncChanged() }))
	}
	s.syncMetronome()
	s.task = s.loop.Start("surface", s.frame)
	s.logger.Infof("mounted (host connected: %v)", s.ch.Connected())
}

// Unmount cancels the frame task, releases every pointer capture (ending
// open gestures) and detaches from the host. It is safe to call twice.
func (s *Surface) Unmount() {
	if !s.Mounted() {
		return
	}
	s.task.Cancel()
	s.task = nil
	s.Capture.ReleaseAll()
	for _, u := range s.unsubs {
		u()
	}
	s.unsubs = nil
	s.Params.Unmount()
	s.Metronome.Stop()
	s.logger.Infof("unmounted")
}

// syncChanged ends a time drag caught by sync turning on, so the locked
// value is never written.
func (s *Surface) syncChanged() {
	if s.Synced() {
		s.Capture.ReleaseOwner(param.Time)
	}
	s.syncMetronome()
}

func (s *Surface) syncMetronome() {
	if s.Params.On(param.Sync) {
		s.Metronome.Start()
	} else {
		s.Metronome.Stop()
	}
}

func (s *Surface) frame() {
	if s.synth != nil {
		s.synth.Tick()
	}
	s.Engine.Tick(s.latest.Frame(), s.VizParams())
	s.Metronome.Tick()
}

// VizParams maps the current parameter values onto the scene.
func (s *Surface) VizParams() viz.Params {
	return viz.Params{
		SizeScale: s.Params.Normalized(param.Time),
		Shimmer:   s.Params.Value(param.Diffuse),
		Taps:      int(s.Params.Value(param.Taps)),
		Freeze:    s.Params.On(param.Freeze),
	}
}

// Telemetry is the newest frame from the host.
func (s *Surface) Telemetry() telemetry.Frame { return s.latest.Frame() }

// Render draws the scene onto c.
func (s *Surface) Render(c viz.Canvas) { s.Engine.Render(c) }

// Synced reports whether the time knob is locked to the tempo.
func (s *Surface) Synced() bool { return s.Params.On(param.Sync) }

// Beats counts metronome beats since creation.
func (s *Surface) Beats() int { return s.beats }

func (s *Surface) editable(id string) *param.Binding {
	b := s.Params.Get(id)
	if b == nil || b.Spec().Kind != param.KindSlider {
		return nil
	}
	if id == param.Time && s.Synced() {
		return nil
	}
	return b
}

// BeginDrag opens a drag on a continuous parameter at pointer y. It
// returns false when the parameter cannot be dragged, including the time
// knob while synced.
func (s *Surface) BeginDrag(id string, y float64) bool {
	b := s.editable(id)
	if b == nil || s.Capture.Held(id) {
		return false
	}
	gesture.StartDrag(s.Capture, b, y, s.opts.DragDivisor)
	return true
}

// PointerMove forwards a global pointer position to live drags.
func (s *Surface) PointerMove(x, y float64) { s.Capture.Move(x, y) }

// PointerUp ends every live drag.
func (s *Surface) PointerUp() { s.Capture.Up() }

// Wheel applies a wheel delta to a continuous parameter. Positive deltas
// lower the value.
func (s *Surface) Wheel(id string, delta float64) bool {
	b := s.editable(id)
	if b == nil {
		return false
	}
	gesture.ApplyWheel(b, delta)
	return true
}

// Nudge moves a continuous parameter by steps increments: one Step each
// for stepped parameters, a hundredth of the range otherwise. Keyboard
// front ends use it where a wheel tick would be too fine. Each nudge is
// bracketed as its own gesture unless a drag already holds one.
func (s *Surface) Nudge(id string, steps int) bool {
	b := s.editable(id)
	if b == nil || steps == 0 {
		return false
	}
	inc := b.Spec().Step
	if inc <= 0 {
		lo, hi := b.Range()
		inc = (hi - lo) / 100
	}
	if !b.Gesturing() {
		b.BeginGesture()
		defer b.EndGesture()
	}
	b.Set(b.Value() + float64(steps)*inc)
	return true
}

// StepDivision moves the tempo division by delta. It only acts while
// synced.
func (s *Surface) StepDivision(delta int) bool {
	b := s.Params.Get(param.Division)
	if b == nil || !s.Synced() {
		return false
	}
	b.SetIndex(beat.Step(b.Index(), delta))
	return true
}

// Toggle flips a boolean parameter.
func (s *Surface) Toggle(id string) bool {
	b := s.Params.Get(id)
	if b == nil || b.Spec().Kind != param.KindToggle {
		return false
	}
	b.Toggle()
	return true
}

// TimeLabel is the delay readout: a division and its length while synced,
// the time value otherwise.
func (s *Surface) TimeLabel() string {
	if s.Synced() {
		d := beat.At(s.Params.Get(param.Division).Index())
		return fmt.Sprintf("%s (%.0f ms)", d.Name, d.Millis(s.opts.BPM))
	}
	b := s.Params.Get(param.Time)
	return b.Spec().Format(b.Value())
}
