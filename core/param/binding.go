package param

import (
	"math"

	"github.com/ingyamilmolinar/drift/internal/bridge"
	game_log "github.com/ingyamilmolinar/drift/internal/log"
)

// Binding mirrors one host parameter. The host owns the value; the binding
// caches the last value seen and applies local edits optimistically.
//
// While a gesture is open the local value is authoritative and every host
// push for this parameter is dropped. The host echoes each set back, so
// accepting pushes mid-drag would make the control fight the pointer.
// After EndGesture the next push wins again.
//
// A Binding is not safe for concurrent use; the surface drives it from the
// event loop.
type Binding struct {
	spec   Spec
	ch     bridge.Channel
	logger *game_log.Logger

	value    float64
	min, max float64
	step     float64

	gesture bool
	seq     uint64
	dropped int

	listeners map[int]func(float64)
	nextID    int
	unsub     func()
}

func NewBinding(spec Spec, ch bridge.Channel, logger *game_log.Logger) *Binding {
	return &Binding{
		spec:      spec,
		ch:        ch,
		logger:    logger.With("param"),
		value:     spec.Clamp(spec.Default),
		min:       spec.Min,
		max:       spec.Max,
		step:      spec.Step,
		listeners: map[int]func(float64){},
	}
}

// Mount subscribes to host pushes and asks the host for the current value.
// Mounting twice is a no-op.
func (b *Binding) Mount() {
	if b.unsub != nil {
		return
	}
	b.unsub = b.ch.Subscribe(b.spec.Event(), b.handle)
	b.send(bridge.Payload{"eventType": bridge.RelayInitialUpdate})
}

// Unmount detaches from the host. An open gesture is closed first so the
// host does not keep an automation lane armed.
func (b *Binding) Unmount() {
	if b.unsub == nil {
		return
	}
	if b.gesture {
		b.EndGesture()
	}
	b.unsub()
	b.unsub = nil
}

func (b *Binding) Mounted() bool { return b.unsub != nil }

func (b *Binding) Spec() Spec { return b.spec }

func (b *Binding) ID() string { return b.spec.ID }

func (b *Binding) Value() float64 { return b.value }

// Range is the current [min,max], which the host may have changed.
func (b *Binding) Range() (float64, float64) { return b.min, b.max }

// Normalized is the value mapped into [0,1] over the current range.
func (b *Binding) Normalized() float64 { return normalize(b.value, b.min, b.max) }

func (b *Binding) Gesturing() bool { return b.gesture }

// Seq is the sequence number of the last value sent to the host.
func (b *Binding) Seq() uint64 { return b.seq }

// Dropped counts host pushes ignored because a gesture was open.
func (b *Binding) Dropped() int { return b.dropped }

// OnChange registers fn for every effective value change, local or remote.
func (b *Binding) OnChange(fn func(v float64)) (remove func()) {
	b.nextID++
	id := b.nextID
	b.listeners[id] = fn
	return func() { delete(b.listeners, id) }
}

func (b *Binding) clamp(v float64) float64 { return clampStep(v, b.min, b.max, b.step) }

// Set clamps v and sends it to the host. Every call is sent, including
// repeats, so a drag is recorded at full resolution.
func (b *Binding) Set(v float64) {
	v = b.clamp(v)
	// update before sending: hosts may echo synchronously
	b.apply(v)
	b.seq++
	b.send(bridge.Payload{"eventType": bridge.RelayValueChanged, "value": b.encode(v)})
}

// SetNormalized sets the value from a [0,1] position.
func (b *Binding) SetNormalized(n float64) {
	if n < 0 || math.IsNaN(n) {
		n = 0
	}
	if n > 1 {
		n = 1
	}
	b.Set(b.min + n*(b.max-b.min))
}

// Index is the current choice index.
func (b *Binding) Index() int { return int(math.Round(b.value)) }

// SetIndex selects a choice by index.
func (b *Binding) SetIndex(i int) { b.Set(float64(i)) }

// On reports a toggle's state.
func (b *Binding) On() bool { return b.value > 0.5 }

// Toggle flips a boolean parameter and commits immediately.
func (b *Binding) Toggle() {
	if b.On() {
		b.Set(0)
	} else {
		b.Set(1)
	}
}

// BeginGesture opens an automation gesture. Nested calls are ignored.
func (b *Binding) BeginGesture() {
	if b.gesture {
		return
	}
	b.gesture = true
	if b.spec.Kind == KindSlider {
		b.send(bridge.Payload{"eventType": bridge.RelayDragStarted})
	}
}

// EndGesture closes the gesture opened by BeginGesture.
func (b *Binding) EndGesture() {
	if !b.gesture {
		return
	}
	b.gesture = false
	if b.spec.Kind == KindSlider {
		b.send(bridge.Payload{"eventType": bridge.RelayDragEnded})
	}
}

func (b *Binding) apply(v float64) {
	if v == b.value {
		return
	}
	b.value = v
	for _, fn := range b.listeners {
		fn(v)
	}
}

func (b *Binding) send(p bridge.Payload) {
	if err := b.ch.Send(b.spec.Event(), p); err != nil {
		b.logger.Errorf("%s: %v", b.spec.ID, err)
	}
}

func (b *Binding) encode(v float64) any {
	switch b.spec.Kind {
	case KindToggle:
		return v > 0.5
	case KindChoice:
		return normalize(v, b.min, b.max)
	default:
		return v
	}
}

func (b *Binding) decode(payload any) (float64, bool) {
	switch b.spec.Kind {
	case KindToggle:
		on, ok := bridge.Bool(payload, "value")
		if !ok {
			return 0, false
		}
		if on {
			return 1, true
		}
		return 0, true
	case KindChoice:
		n, ok := bridge.Float(payload, "value")
		if !ok {
			return 0, false
		}
		return b.min + math.Round(normalize(n, 0, 1)*(b.max-b.min)), true
	default:
		return bridge.Float(payload, "value")
	}
}

func (b *Binding) handle(payload any) {
	switch bridge.String(payload, "eventType") {
	case bridge.RelayValueChanged:
		if b.gesture {
			b.dropped++
			b.logger.Debugf("%s: dropped host push during gesture (%d)", b.spec.ID, b.dropped)
			return
		}
		v, ok := b.decode(payload)
		if !ok {
			b.logger.Warnf("%s: unreadable host value %v", b.spec.ID, payload)
			return
		}
		b.apply(b.clamp(v))
	case bridge.RelayPropertiesChanged:
		if b.spec.Kind != KindSlider {
			return
		}
		lo, okLo := bridge.Float(payload, "start")
		hi, okHi := bridge.Float(payload, "end")
		if okLo && okHi && hi > lo {
			b.min, b.max = lo, hi
		}
		if step, ok := bridge.Float(payload, "interval"); ok && step >= 0 {
			b.step = step
		}
		b.apply(b.clamp(b.value))
	}
}
