package surface

import (
	"testing"
	"time"

	"github.com/ingyamilmolinar/drift/core/activation"
	"github.com/ingyamilmolinar/drift/core/loop"
	"github.com/ingyamilmolinar/drift/core/param"
	"github.com/ingyamilmolinar/drift/core/viz"
	"github.com/ingyamilmolinar/drift/internal/bridge"
	"github.com/ingyamilmolinar/drift/internal/config"
	game_log "github.com/ingyamilmolinar/drift/internal/log"
)

func newSurface(t *testing.T) (*Surface, *bridge.Synthetic, *loop.Loop) {
	t.Helper()
	logger := game_log.Discard()
	host := bridge.NewSynthetic(bridge.SyntheticOptions{}, logger)
	bus := bridge.NewBus(host, false, logger)
	lp := loop.New()
	s := New(bus, lp, logger, Options{Seed: 1})
	s.AttachSynthetic(host)
	return s, host, lp
}

// relayTap records the relay event types sent for one parameter.
type relayTap struct {
	bridge.Channel
	event string
	types []string
}

func (r *relayTap) Send(event string, payload any) error {
	if event == r.event {
		r.types = append(r.types, bridge.String(bridge.Object(payload), "eventType"))
	}
	return r.Channel.Send(event, payload)
}

func TestMountMirrorsHostAndAnimates(t *testing.T) {
	s, _, lp := newSurface(t)
	s.Mount()
	if s.Params.Value(param.Time) != 400 || s.Params.Value(param.Mix) != 35 {
		t.Fatalf("defaults not mirrored")
	}
	for i := 0; i < 30; i++ {
		lp.Frame()
	}
	if s.Telemetry().InputLevel == 0 {
		t.Fatalf("synthetic telemetry not flowing")
	}
	if len(s.Engine.Particles()) == 0 {
		t.Fatalf("scene did not animate")
	}
	var rec viz.Recorder
	s.Render(&rec)
	if len(rec.Ops) == 0 {
		t.Fatalf("nothing rendered")
	}
}

func TestUnmountReleasesEverything(t *testing.T) {
	s, host, lp := newSurface(t)
	s.Mount()
	if !s.BeginDrag(param.Mix, 100) {
		t.Fatalf("drag refused")
	}
	mix := s.Params.Get(param.Mix)
	if !mix.Gesturing() {
		t.Fatalf("drag did not open a gesture")
	}
	s.Unmount()
	if s.Capture.Active() != 0 || mix.Gesturing() {
		t.Fatalf("unmount left capture=%d gesture=%v", s.Capture.Active(), mix.Gesturing())
	}
	if lp.Tasks() != 0 {
		t.Fatalf("frame task still scheduled")
	}
	for _, ev := range []string{bridge.EventVisualizerData, bridge.SliderEvent(param.Mix), bridge.ToggleEvent(param.Freeze)} {
		if host.Listeners(ev) != 0 {
			t.Fatalf("%s still has listeners", ev)
		}
	}
	s.Unmount()
}

func TestDragIgnoresHostEchoes(t *testing.T) {
	s, _, _ := newSurface(t)
	s.Mount()
	s.BeginDrag(param.Mix, 300)
	// 75px up is half the range
	s.PointerMove(9999, 225)
	if v := s.Params.Value(param.Mix); v != 85 {
		t.Fatalf("mix = %v, want 85", v)
	}
	s.PointerMove(0, 2000)
	s.PointerUp()
	mix := s.Params.Get(param.Mix)
	if mix.Value() != 0 || mix.Dropped() == 0 || mix.Gesturing() {
		t.Fatalf("value=%v dropped=%d gesturing=%v", mix.Value(), mix.Dropped(), mix.Gesturing())
	}
}

func TestSyncLocksTimeKnob(t *testing.T) {
	s, _, _ := newSurface(t)
	s.Mount()
	if s.StepDivision(1) {
		t.Fatalf("division stepped while unsynced")
	}
	s.Toggle(param.Sync)
	if !s.Synced() {
		t.Fatalf("sync toggle failed")
	}
	if s.BeginDrag(param.Time, 0) || s.Wheel(param.Time, 1) {
		t.Fatalf("time knob editable while synced")
	}
	if s.Params.Value(param.Time) != 400 {
		t.Fatalf("time changed while synced")
	}
	for i := 0; i < 20; i++ {
		s.StepDivision(1)
	}
	if got := s.Params.Get(param.Division).Index(); got != 11 {
		t.Fatalf("division = %d, want 11", got)
	}
	if got := s.TimeLabel(); got != "1/16D (188 ms)" {
		t.Fatalf("label = %q", got)
	}
	if s.Metronome.Division != 11 || !s.Metronome.Running() {
		t.Fatalf("metronome not following division")
	}
	s.Toggle(param.Sync)
	if !s.Wheel(param.Time, -10) || s.Params.Value(param.Time) == 400 {
		t.Fatalf("time knob still locked after unsync")
	}
}

func TestAppGatesSurfaceOnActivation(t *testing.T) {
	logger := game_log.Discard()
	cfg := config.Default()
	cfg.Synthetic.Configured = true
	cfg.Synthetic.ValidCodes = []string{"DRIFT-42"}
	host := bridge.NewSynthetic(cfg.Synthetic.Options(), logger)
	app := newApp(bridge.NewBus(host, false, logger), host, cfg, logger)

	now := time.Unix(0, 0)
	app.Activation.SetClock(func() time.Time { return now })
	app.Start()
	app.Frame()
	if app.Activation.Machine().Screen() != activation.Input {
		t.Fatalf("screen = %s", app.Activation.Machine().Screen())
	}
	app.Activation.Submit("drift-42")
	app.Frame()
	if app.Activation.Machine().Screen() != activation.Success || app.Activated() {
		t.Fatalf("screen=%s activated=%v", app.Activation.Machine().Screen(), app.Activated())
	}
	now = now.Add(activation.SuccessDelay)
	app.Frame()
	if !app.Activated() {
		t.Fatalf("surface did not mount after the success delay")
	}
	app.Close()
	if app.Activated() || host.Listeners(bridge.EventVisualizerData) != 0 {
		t.Fatalf("close left the surface mounted")
	}
	if err := app.Bus.Send(bridge.EventGetActivationStatus, nil); err == nil {
		t.Fatalf("bus still open after close")
	}
}

func TestNudge(t *testing.T) {
	s, _, _ := newSurface(t)
	s.Mount()
	if !s.Nudge(param.Taps, 1) || s.Params.Value(param.Taps) != 3 {
		t.Fatalf("taps = %v, want 3", s.Params.Value(param.Taps))
	}
	s.Nudge(param.Taps, 5)
	if s.Params.Value(param.Taps) != 4 {
		t.Fatalf("taps not clamped: %v", s.Params.Value(param.Taps))
	}
	s.Nudge(param.Mix, -5)
	if v := s.Params.Value(param.Mix); v < 29.999 || v > 30.001 {
		t.Fatalf("mix = %v, want 30", v)
	}
	if s.Nudge(param.Freeze, 1) {
		t.Fatalf("toggles cannot be nudged")
	}
	s.Toggle(param.Sync)
	if s.Nudge(param.Time, 1) {
		t.Fatalf("time nudged while synced")
	}
}

func TestSyncEndsLiveTimeDrag(t *testing.T) {
	s, _, _ := newSurface(t)
	s.Mount()
	if !s.BeginDrag(param.Time, 300) {
		t.Fatalf("time drag refused")
	}
	tm := s.Params.Get(param.Time)
	s.Toggle(param.Sync)
	if s.Capture.Held(param.Time) || tm.Gesturing() {
		t.Fatalf("sync left the time drag open")
	}
	s.PointerMove(0, 200)
	if v := tm.Value(); v != 400 {
		t.Fatalf("time = %v while synced, want 400", v)
	}
}

func TestSyncKeepsOtherDrags(t *testing.T) {
	s, _, _ := newSurface(t)
	s.Mount()
	s.BeginDrag(param.Mix, 300)
	s.Toggle(param.Sync)
	if !s.Capture.Held(param.Mix) {
		t.Fatalf("sync released the mix drag")
	}
	s.PointerUp()
}

func TestNudgeIsBracketedAsGesture(t *testing.T) {
	logger := game_log.Discard()
	host := bridge.NewSynthetic(bridge.SyntheticOptions{}, logger)
	tap := &relayTap{Channel: bridge.NewBus(host, false, logger), event: bridge.SliderEvent(param.Mix)}
	s := New(tap, loop.New(), logger, Options{Seed: 1})
	s.AttachSynthetic(host)
	s.Mount()

	mix := s.Params.Get(param.Mix)
	var open bool
	mix.OnChange(func(float64) { open = mix.Gesturing() })
	tap.types = nil
	if !s.Nudge(param.Mix, 1) {
		t.Fatalf("nudge refused")
	}
	if !open || mix.Gesturing() {
		t.Fatalf("gesture open during nudge=%v after=%v", open, mix.Gesturing())
	}
	want := []string{bridge.RelayDragStarted, bridge.RelayValueChanged, bridge.RelayDragEnded}
	if len(tap.types) != len(want) {
		t.Fatalf("relay = %v, want %v", tap.types, want)
	}
	for i := range want {
		if tap.types[i] != want[i] {
			t.Fatalf("relay = %v, want %v", tap.types, want)
		}
	}
}

func TestNudgeDuringDragKeepsGesture(t *testing.T) {
	s, _, _ := newSurface(t)
	s.Mount()
	s.BeginDrag(param.Mix, 300)
	s.Nudge(param.Mix, 1)
	if !s.Params.Get(param.Mix).Gesturing() {
		t.Fatalf("nudge closed the drag's gesture")
	}
	s.PointerUp()
}
