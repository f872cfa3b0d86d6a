package param

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ingyamilmolinar/drift/internal/bridge"
	game_log "github.com/ingyamilmolinar/drift/internal/log"
)

// recorder is a Channel that keeps every outbound payload.
type recorder struct {
	sent     []bridge.Payload
	handlers map[string]bridge.Handler
	echo     bool
}

func newRecorder() *recorder { return &recorder{handlers: map[string]bridge.Handler{}} }

func (r *recorder) Send(event string, payload any) error {
	p := bridge.Object(payload)
	r.sent = append(r.sent, p)
	if r.echo && bridge.String(p, "eventType") == bridge.RelayValueChanged {
		r.push(event, p)
	}
	return nil
}

func (r *recorder) Subscribe(event string, h bridge.Handler) func() {
	r.handlers[event] = h
	return func() { delete(r.handlers, event) }
}

func (r *recorder) Connected() bool { return true }

func (r *recorder) push(event string, p any) {
	if h := r.handlers[event]; h != nil {
		h(p)
	}
}

func (r *recorder) types() []string {
	var out []string
	for _, p := range r.sent {
		out = append(out, bridge.String(p, "eventType"))
	}
	return out
}

func specFor(t *testing.T, id string) Spec {
	t.Helper()
	s, ok := Lookup(id)
	if !ok {
		t.Fatalf("missing catalog entry %s", id)
	}
	return s
}

func TestCatalogDefaultsInRange(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Catalog() {
		if seen[s.ID] {
			t.Fatalf("duplicate id %s", s.ID)
		}
		seen[s.ID] = true
		if s.Default < s.Min || s.Default > s.Max {
			t.Fatalf("%s default %v outside [%v,%v]", s.ID, s.Default, s.Min, s.Max)
		}
	}
	if d := specFor(t, Division); len(d.Items) != 12 || d.Format(d.Default) != "1/4" {
		t.Fatalf("division catalog wrong: %v", d.Items)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		id   string
		v    float64
		want string
	}{
		{Time, 400, "400 ms"},
		{Mix, 35, "35%"},
		{Pitch, 3, "+3 st"},
		{Pitch, -12, "-12 st"},
		{Pitch, 0, "0 st"},
		{Output, -1.3, "-1.3 dB"},
		{Freeze, 1, "ON"},
		{Division, 11, "1/16D"},
		{Taps, 2, "2"},
	}
	for _, c := range cases {
		if got := specFor(t, c.id).Format(c.v); got != c.want {
			t.Fatalf("%s Format(%v) = %q, want %q", c.id, c.v, got, c.want)
		}
	}
}

func TestMountRequestsInitialUpdateAndUnmountDetaches(t *testing.T) {
	r := newRecorder()
	b := NewBinding(specFor(t, Mix), r, game_log.Discard())
	b.Mount()
	b.Mount()
	if got := r.types(); len(got) != 1 || got[0] != bridge.RelayInitialUpdate {
		t.Fatalf("expected one initial update request, got %v", got)
	}
	b.Unmount()
	if len(r.handlers) != 0 {
		t.Fatalf("unmount left a subscription")
	}
}

func TestSetClampsAndSendsEveryValue(t *testing.T) {
	r := newRecorder()
	b := NewBinding(specFor(t, Mix), r, game_log.Discard())
	b.Mount()
	b.BeginGesture()
	for _, v := range []float64{10, 10, 150, -5} {
		b.Set(v)
	}
	b.EndGesture()

	want := []string{bridge.RelayInitialUpdate, bridge.RelayDragStarted,
		bridge.RelayValueChanged, bridge.RelayValueChanged, bridge.RelayValueChanged, bridge.RelayValueChanged,
		bridge.RelayDragEnded}
	got := r.types()
	if len(got) != len(want) {
		t.Fatalf("sent %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sent %v, want %v", got, want)
		}
	}
	if v := bridge.FloatOr(r.sent[4], "value", -1); v != 100 {
		t.Fatalf("value not clamped to max: %v", v)
	}
	if b.Value() != 0 || b.Seq() != 4 {
		t.Fatalf("value=%v seq=%d", b.Value(), b.Seq())
	}
}

func TestHostWinsOutsideGesture(t *testing.T) {
	r := newRecorder()
	b := NewBinding(specFor(t, Feedback), r, game_log.Discard())
	b.Mount()
	var changes []float64
	b.OnChange(func(v float64) { changes = append(changes, v) })

	r.push(b.Spec().Event(), bridge.Payload{"eventType": bridge.RelayValueChanged, "value": 70.0})
	r.push(b.Spec().Event(), bridge.Payload{"eventType": bridge.RelayValueChanged, "value": 500.0})
	if b.Value() != 100 {
		t.Fatalf("host value not clamped: %v", b.Value())
	}
	if len(changes) != 2 || changes[0] != 70 {
		t.Fatalf("changes = %v", changes)
	}
	r.push(b.Spec().Event(), bridge.Payload{"eventType": bridge.RelayValueChanged, "value": "garbage"})
	if b.Value() != 100 {
		t.Fatalf("malformed push altered value")
	}
}

func TestHostPushesDroppedDuringGesture(t *testing.T) {
	r := newRecorder()
	r.echo = true
	b := NewBinding(specFor(t, Mix), r, game_log.Discard())
	b.Mount()

	b.BeginGesture()
	b.Set(60)
	r.push(b.Spec().Event(), bridge.Payload{"eventType": bridge.RelayValueChanged, "value": 20.0})
	if b.Value() != 60 {
		t.Fatalf("host push overrode an open gesture: %v", b.Value())
	}
	if b.Dropped() != 2 {
		t.Fatalf("expected echo and stale push dropped, got %d", b.Dropped())
	}
	b.EndGesture()

	r.push(b.Spec().Event(), bridge.Payload{"eventType": bridge.RelayValueChanged, "value": 20.0})
	if b.Value() != 20 {
		t.Fatalf("host should win after the gesture: %v", b.Value())
	}
}

func TestToggleAndChoiceEncoding(t *testing.T) {
	r := newRecorder()
	tg := NewBinding(specFor(t, Freeze), r, game_log.Discard())
	tg.Toggle()
	if !tg.On() || r.sent[0]["value"] != true {
		t.Fatalf("toggle did not commit true: %v", r.sent[0])
	}
	for _, p := range r.sent {
		if bridge.String(p, "eventType") == bridge.RelayDragStarted {
			t.Fatalf("toggle must not open a gesture")
		}
	}
	tg.Mount()
	r.push(tg.Spec().Event(), bridge.Payload{"eventType": bridge.RelayValueChanged, "value": false})
	if tg.On() {
		t.Fatalf("host toggle push ignored")
	}

	ch := NewBinding(specFor(t, Division), r, game_log.Discard())
	ch.Mount()
	ch.SetIndex(11)
	last := r.sent[len(r.sent)-1]
	if v := bridge.FloatOr(last, "value", -1); v != 1 {
		t.Fatalf("choice should send normalized 1, got %v", v)
	}
	r.push(ch.Spec().Event(), bridge.Payload{"eventType": bridge.RelayValueChanged, "value": 3.0 / 11})
	if ch.Index() != 3 {
		t.Fatalf("choice index from host = %d, want 3", ch.Index())
	}
	ch.SetIndex(40)
	if ch.Index() != 11 {
		t.Fatalf("choice index not clamped: %d", ch.Index())
	}
}

func TestPropertiesChangedUpdatesRange(t *testing.T) {
	r := newRecorder()
	b := NewBinding(specFor(t, Time), r, game_log.Discard())
	b.Mount()
	b.Set(1500)
	r.push(b.Spec().Event(), bridge.Payload{"eventType": bridge.RelayPropertiesChanged, "start": 20.0, "end": 1000.0})
	lo, hi := b.Range()
	if lo != 20 || hi != 1000 || b.Value() != 1000 {
		t.Fatalf("range=[%v,%v] value=%v", lo, hi, b.Value())
	}
	r.push(b.Spec().Event(), bridge.Payload{"eventType": bridge.RelayPropertiesChanged, "start": 5.0, "end": 1.0})
	if lo, hi = b.Range(); lo != 20 || hi != 1000 {
		t.Fatalf("inverted range accepted")
	}
}

func TestRandomSetsStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := newRecorder()
	for _, sp := range Catalog() {
		b := NewBinding(sp, r, game_log.Discard())
		for i := 0; i < 500; i++ {
			v := (rng.Float64()*4 - 2) * (sp.Max - sp.Min + 1)
			if i%50 == 0 {
				v = math.NaN()
			}
			b.Set(v)
			if b.Value() < sp.Min || b.Value() > sp.Max || math.IsNaN(b.Value()) {
				t.Fatalf("%s escaped range: %v", sp.ID, b.Value())
			}
		}
	}
}

func TestSetWithSyntheticHost(t *testing.T) {
	logger := game_log.Discard()
	host := bridge.NewSynthetic(bridge.SyntheticOptions{}, logger)
	bus := bridge.NewBus(host, false, logger)
	specs := Catalog()
	Declare(host, specs)
	set := NewSet(specs, bus, logger)
	set.Mount()

	if set.Value(Time) != 400 || set.Get(Division).Index() != 2 || set.On(Freeze) {
		t.Fatalf("initial update not applied: time=%v div=%d", set.Value(Time), set.Get(Division).Index())
	}
	set.Get(Mix).Set(80)
	if v, _ := host.Value(bridge.SliderEvent(Mix)); v.(float64) != 80 {
		t.Fatalf("host did not receive set: %v", v)
	}
	host.SetValue(bridge.ToggleEvent(Freeze), true)
	if !set.On(Freeze) {
		t.Fatalf("host toggle not mirrored")
	}
	set.Unmount()
	if host.Listeners(bridge.SliderEvent(Mix)) != 0 {
		t.Fatalf("unmount left host listeners")
	}
}
