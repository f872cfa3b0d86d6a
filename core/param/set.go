package param

import (
	"github.com/ingyamilmolinar/drift/internal/bridge"
	game_log "github.com/ingyamilmolinar/drift/internal/log"
)

// Set is the bindings for a list of specs, kept in the order given.
type Set struct {
	order []*Binding
	byID  map[string]*Binding
}

func NewSet(specs []Spec, ch bridge.Channel, logger *game_log.Logger) *Set {
	s := &Set{byID: make(map[string]*Binding, len(specs))}
	for _, sp := range specs {
		b := NewBinding(sp, ch, logger)
		s.order = append(s.order, b)
		s.byID[sp.ID] = b
	}
	return s
}

// Get returns the binding for id, or nil.
func (s *Set) Get(id string) *Binding { return s.byID[id] }

// All returns the bindings in catalog order.
func (s *Set) All() []*Binding { return s.order }

func (s *Set) Mount() {
	for _, b := range s.order {
		b.Mount()
	}
}

func (s *Set) Unmount() {
	for _, b := range s.order {
		b.Unmount()
	}
}

// Value returns the value for id, or 0 when id is unknown.
func (s *Set) Value(id string) float64 {
	if b := s.byID[id]; b != nil {
		return b.Value()
	}
	return 0
}

// Normalized returns the [0,1] position for id, or 0 when id is unknown.
func (s *Set) Normalized(id string) float64 {
	if b := s.byID[id]; b != nil {
		return b.Normalized()
	}
	return 0
}

// On reports a toggle's state, false when id is unknown.
func (s *Set) On(id string) bool {
	if b := s.byID[id]; b != nil {
		return b.On()
	}
	return false
}

// Declare seeds a synthetic host with every spec's default and range so
// initial-update requests are answered as the plugin would.
func Declare(h *bridge.Synthetic, specs []Spec) {
	for _, sp := range specs {
		var v any = sp.Default
		var props bridge.Payload
		switch sp.Kind {
		case KindToggle:
			v = sp.Default > 0.5
		case KindChoice:
			v = sp.Normalize(sp.Default)
			props = bridge.Payload{"choices": append([]string(nil), sp.Items...)}
		default:
			props = bridge.Payload{"start": sp.Min, "end": sp.Max, "interval": sp.Step, "name": sp.Label, "label": sp.Unit}
		}
		h.Declare(sp.Event(), v, props)
	}
}
