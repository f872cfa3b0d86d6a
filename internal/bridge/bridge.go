// Package bridge carries named events between the control surface and the
// plugin host. A real host is reached through the web view's JUCE backend;
// without one, an in-process Synthetic host answers instead so the surface
// stays usable as a standalone preview.
package bridge

import "errors"

// Host protocol events.
const (
	EventGetActivationStatus = "getActivationStatus"
	EventActivationState     = "activationState"
	EventActivateLicense     = "activateLicense"
	EventActivationResult    = "activationResult"
	EventVisualizerData      = "visualizerData"
)

// Relay event types used by the per-parameter JUCE relays.
const (
	RelayValueChanged      = "valueChanged"
	RelayPropertiesChanged = "propertiesChanged"
	RelayDragStarted       = "sliderDragStarted"
	RelayDragEnded         = "sliderDragEnded"
	RelayInitialUpdate     = "requestInitialUpdate"
)

// ErrClosed is returned by Send after the channel has been closed.
var ErrClosed = errors.New("bridge: channel closed")

// Payload is the decoded shape of every event body.
type Payload = map[string]any

// Handler receives the payload of one inbound event.
type Handler func(payload any)

// Channel is the capability set every consumer depends on.
type Channel interface {
	Send(event string, payload any) error
	Subscribe(event string, h Handler) (unsubscribe func())
	// Connected reports whether a real host is on the other end.
	Connected() bool
}

// Transport is a raw host connection: one listener per event name.
type Transport interface {
	Emit(event string, payload any) error
	Listen(event string, deliver func(payload any)) (stop func())
}

// SliderEvent is the relay event name for a continuous parameter.
func SliderEvent(id string) string { return "__juce__slider" + id }

// ToggleEvent is the relay event name for a boolean parameter.
func ToggleEvent(id string) string { return "__juce__toggle" + id }

// ComboBoxEvent is the relay event name for a choice parameter.
func ComboBoxEvent(id string) string { return "__juce__comboBox" + id }
