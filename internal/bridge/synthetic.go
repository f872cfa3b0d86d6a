package bridge

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	game_log "github.com/ingyamilmolinar/drift/internal/log"
)

// SyntheticStep is how far the synthetic clock advances per Tick.
const SyntheticStep = 0.016

// SyntheticOptions shapes how the stand-in host answers.
type SyntheticOptions struct {
	// Configured enables the licensing handshake. When false the host
	// reports an unlicensed build and activation completes immediately.
	Configured bool
	// Activated starts the host with a valid activation on record.
	Activated bool
	// ValidCodes are accepted by activateLicense. Codes are compared
	// upper-cased.
	ValidCodes []string
	// Results forces a status for specific codes ("revoked", ...).
	Results map[string]string
	// MaxActivations bounds successful activations; 0 means 3.
	MaxActivations int
}

type relayState struct {
	value any
	props Payload
}

type synthListener struct {
	id      int
	deliver func(any)
}

// Synthetic is an in-process host. It mirrors parameter relays, answers the
// activation protocol and produces an oscillating telemetry stream, so every
// consumer behaves as it would inside the plugin.
type Synthetic struct {
	mu        sync.Mutex
	opts      SyntheticOptions
	listeners map[string][]synthListener
	nextID    int
	relays    map[string]*relayState
	t         float64
	machineID string
	active    map[string]bool
	info      Payload
	now       func() time.Time
	logger    *game_log.Logger
}

func NewSynthetic(opts SyntheticOptions, logger *game_log.Logger) *Synthetic {
	if opts.MaxActivations <= 0 {
		opts.MaxActivations = 3
	}
	s := &Synthetic{
		opts:      opts,
		listeners: map[string][]synthListener{},
		relays:    map[string]*relayState{},
		machineID: uuid.NewString(),
		active:    map[string]bool{},
		now:       time.Now,
		logger:    logger.With("synth"),
	}
	if opts.Activated {
		s.active["PREVIEW"] = true
		s.info = s.infoForLocked("PREVIEW")
	}
	return s
}

// Declare seeds the stored value and properties for a relay event so that
// requestInitialUpdate has something to answer with.
func (s *Synthetic) Declare(event string, value any, props Payload) {
	s.mu.Lock()
	s.relays[event] = &relayState{value: value, props: props}
	s.mu.Unlock()
}

// Value returns the stored value for a relay event.
func (s *Synthetic) Value(event string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.relays[event]
	if !ok {
		return nil, false
	}
	return r.value, true
}

// SetValue changes a relay value from the host side, as automation
// playback would, and pushes it to listeners.
func (s *Synthetic) SetValue(event string, value any) {
	s.mu.Lock()
	r, ok := s.relays[event]
	if !ok {
		r = &relayState{}
		s.relays[event] = r
	}
	r.value = value
	s.mu.Unlock()
	s.push(event, Payload{"eventType": RelayValueChanged, "value": value})
}

func (s *Synthetic) Listen(event string, deliver func(any)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners[event] = append(s.listeners[event], synthListener{id: id, deliver: deliver})
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		ls := s.listeners[event]
		for i, l := range ls {
			if l.id == id {
				s.listeners[event] = append(ls[:i], ls[i+1:]...)
				break
			}
		}
		if len(s.listeners[event]) == 0 {
			delete(s.listeners, event)
		}
	}
}

// Listeners reports how many listeners are attached to event.
func (s *Synthetic) Listeners(event string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners[event])
}

func (s *Synthetic) push(event string, payload any) {
	s.mu.Lock()
	ls := append([]synthListener(nil), s.listeners[event]...)
	s.mu.Unlock()
	for _, l := range ls {
		l.deliver(payload)
	}
}

// Emit receives a UI→host event.
func (s *Synthetic) Emit(event string, payload any) error {
	switch {
	case event == EventGetActivationStatus:
		s.push(EventActivationState, s.activationState())
	case event == EventActivateLicense:
		s.push(EventActivationResult, s.activate(String(payload, "code")))
	case strings.HasPrefix(event, "__juce__"):
		s.relay(event, payload)
	default:
		s.logger.Debugf("ignoring %s", event)
	}
	return nil
}

func (s *Synthetic) relay(event string, payload any) {
	switch String(payload, "eventType") {
	case RelayValueChanged:
		v := Object(payload)["value"]
		s.mu.Lock()
		r, ok := s.relays[event]
		if !ok {
			r = &relayState{}
			s.relays[event] = r
		}
		r.value = v
		s.mu.Unlock()
		// echo like the host attachment does after applying the change
		s.push(event, Payload{"eventType": RelayValueChanged, "value": v})
	case RelayInitialUpdate:
		s.mu.Lock()
		r, ok := s.relays[event]
		var value any
		var props Payload
		if ok {
			value, props = r.value, r.props
		}
		s.mu.Unlock()
		if props != nil {
			p := Payload{"eventType": RelayPropertiesChanged}
			for k, v := range props {
				p[k] = v
			}
			s.push(event, p)
		}
		if ok {
			s.push(event, Payload{"eventType": RelayValueChanged, "value": value})
		}
	case RelayDragStarted, RelayDragEnded:
		s.logger.Debugf("%s %s", event, String(payload, "eventType"))
	}
}

func (s *Synthetic) activationState() Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Payload{
		"isConfigured": s.opts.Configured,
		"isActivated":  s.info != nil,
	}
	if s.info != nil {
		st["info"] = s.info
	}
	return st
}

func (s *Synthetic) activate(code string) Payload {
	code = strings.ToUpper(strings.TrimSpace(code))
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.opts.Results[code]; ok {
		return Payload{"status": status}
	}
	if s.active[code] {
		return Payload{"status": "already_active", "info": s.infoForLocked(code)}
	}
	valid := false
	for _, c := range s.opts.ValidCodes {
		if strings.ToUpper(c) == code {
			valid = true
			break
		}
	}
	if !valid {
		return Payload{"status": "invalid"}
	}
	if len(s.active) >= s.opts.MaxActivations {
		return Payload{"status": "max_reached"}
	}
	s.active[code] = true
	s.info = s.infoForLocked(code)
	return Payload{"status": "valid", "info": s.info}
}

func (s *Synthetic) infoForLocked(code string) Payload {
	return Payload{
		"activationCode":     code,
		"machineId":          s.machineID,
		"activatedAt":        s.now().UTC().Format(time.RFC3339),
		"currentActivations": float64(len(s.active)),
		"maxActivations":     float64(s.opts.MaxActivations),
		"isValid":            true,
	}
}

// Tick advances the synthetic clock and pushes one visualizerData event.
func (s *Synthetic) Tick() {
	s.mu.Lock()
	s.t += SyntheticStep
	t := s.t
	pitch, _ := toFloat(s.relayValueLocked(SliderEvent("pitch")))
	frozen, _ := s.relayValueLocked(ToggleEvent("freeze")).(bool)
	s.mu.Unlock()

	frame := SyntheticTelemetry(t)
	frame["currentPitch"] = pitch
	frame["isFrozen"] = frozen
	s.push(EventVisualizerData, frame)
}

func (s *Synthetic) relayValueLocked(event string) any {
	if r, ok := s.relays[event]; ok {
		return r.value
	}
	return nil
}

// SyntheticTelemetry is the deterministic oscillator behind Tick. Every
// value is bounded: levels in [0,1], drift in [-0.5,0.5].
func SyntheticTelemetry(t float64) Payload {
	pulse := math.Sin(t*2)*0.5 + 0.5
	input := 0.2 + pulse*0.5
	drift := math.Sin(t*0.3) * 0.5
	return Payload{
		"inputLevel":    input,
		"duckEnvelope":  drift,
		"tap1Level":     input * 0.7,
		"tap2Level":     input * 0.5,
		"tap3Level":     input * 0.3,
		"tap4Level":     input * 0.15,
		"grainActivity": 0.15 + pulse*0.6,
		"outputLevel":   input * 0.9,
	}
}
