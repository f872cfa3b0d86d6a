// Package activation gates the control surface behind the host's license
// handshake. Machine is a pure reducer; Controller attaches it to the
// bridge and owns its timers.
package activation

import (
	"strings"
	"time"
)

type Screen int

const (
	Checking Screen = iota
	Input
	Activating
	Success
	Error
)

func (s Screen) String() string {
	switch s {
	case Checking:
		return "checking"
	case Input:
		return "input"
	case Activating:
		return "activating"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Result statuses reported by the host.
const (
	StatusValid         = "valid"
	StatusAlreadyActive = "already_active"
	StatusInvalid       = "invalid"
	StatusRevoked       = "revoked"
	StatusMaxReached    = "max_reached"
	StatusNetworkError  = "network_error"
	StatusServerError   = "server_error"
)

// Delays before completion fires.
const (
	SuccessDelay = 1500 * time.Millisecond
	DevSkipDelay = 500 * time.Millisecond
)

var messages = map[string]string{
	StatusInvalid:      "Invalid license key. Please check and try again.",
	StatusRevoked:      "This license has been revoked.",
	StatusMaxReached:   "Maximum activations reached. Deactivate another device first.",
	StatusNetworkError: "Network error. Please check your connection.",
	StatusServerError:  "Server error. Please try again later.",
}

const fallbackMessage = "Activation failed. Please try again."

// Message is the user-facing text for a failed status.
func Message(status string) string {
	if m, ok := messages[status]; ok {
		return m
	}
	return fallbackMessage
}

// Info is the host's record of an activation.
type Info struct {
	ActivationCode     string
	MachineID          string
	ActivatedAt        string
	CurrentActivations int
	MaxActivations     int
	IsValid            bool
}

// Events the machine reacts to.
type (
	// StateReceived is the host's activationState push.
	StateReceived struct {
		Configured bool
		Activated  bool
		Info       *Info
	}
	// ResultReceived is the host's activationResult push.
	ResultReceived struct {
		Status string
		Info   *Info
	}
	// Submitted is the user asking to activate a code.
	Submitted struct{ Code string }
	// Retried is the user leaving the error screen.
	Retried struct{}
	// TimerFired reports that a scheduled completion delay elapsed.
	TimerFired struct{}
	// Skipped bypasses the handshake in a standalone development build.
	Skipped struct{}
)

type Event interface{ isEvent() }

func (StateReceived) isEvent()  {}
func (ResultReceived) isEvent() {}
func (Submitted) isEvent()      {}
func (Retried) isEvent()        {}
func (TimerFired) isEvent()     {}
func (Skipped) isEvent()        {}

// Effects the owner must carry out.
type (
	// SendActivate asks the host to activate Code.
	SendActivate struct{ Code string }
	// ScheduleCompletion arms a timer that feeds TimerFired back.
	ScheduleCompletion struct{ After time.Duration }
	// Complete ends activation; the surface may mount.
	Complete struct{}
)

type Effect interface{ isEffect() }

func (SendActivate) isEffect()       {}
func (ScheduleCompletion) isEffect() {}
func (Complete) isEffect()           {}

// Machine is the activation session. The zero value is in Checking.
type Machine struct {
	screen  Screen
	code    string
	status  string
	message string
	info    *Info
	pending bool
	done    bool
}

func (m *Machine) Screen() Screen { return m.screen }

// Code is the last code submitted.
func (m *Machine) Code() string { return m.code }

// Status is the last result status from the host.
func (m *Machine) Status() string { return m.status }

// Message is the error text shown on the error screen, empty otherwise.
func (m *Machine) Message() string { return m.message }

// Info is the activation record, when the host supplied one.
func (m *Machine) Info() *Info { return m.info }

// Done reports that Complete has been emitted.
func (m *Machine) Done() bool { return m.done }

// Handle applies ev and returns the effects to perform. Events that do not
// apply to the current screen are ignored.
func (m *Machine) Handle(ev Event) []Effect {
	if m.done {
		return nil
	}
	switch ev := ev.(type) {
	case StateReceived:
		if m.screen != Checking {
			return nil
		}
		if !ev.Configured {
			m.done = true
			return []Effect{Complete{}}
		}
		if ev.Activated && ev.Info != nil && ev.Info.IsValid {
			m.info = ev.Info
			return m.succeed()
		}
		m.screen = Input
	case Submitted:
		if m.screen != Input {
			return nil
		}
		code := strings.ToUpper(strings.TrimSpace(ev.Code))
		if code == "" {
			return nil
		}
		m.code = code
		m.message = ""
		m.screen = Activating
		return []Effect{SendActivate{Code: code}}
	case ResultReceived:
		if m.screen != Activating {
			return nil
		}
		m.status = ev.Status
		switch ev.Status {
		case StatusValid, StatusAlreadyActive:
			m.info = ev.Info
			return m.succeed()
		default:
			m.message = Message(ev.Status)
			m.screen = Error
		}
	case Retried:
		if m.screen != Error {
			return nil
		}
		m.message = ""
		m.screen = Input
	case Skipped:
		if m.screen != Checking || m.pending {
			return nil
		}
		m.pending = true
		return []Effect{ScheduleCompletion{After: DevSkipDelay}}
	case TimerFired:
		if !m.pending {
			return nil
		}
		m.pending = false
		m.done = true
		return []Effect{Complete{}}
	}
	return nil
}

func (m *Machine) succeed() []Effect {
	m.screen = Success
	m.message = ""
	m.pending = true
	return []Effect{ScheduleCompletion{After: SuccessDelay}}
}
