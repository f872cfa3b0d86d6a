package activation

import (
	"time"

	"github.com/ingyamilmolinar/drift/internal/bridge"
	game_log "github.com/ingyamilmolinar/drift/internal/log"
)

// Controller runs a Machine against the host. It is driven from the event
// loop: host events arrive through the bridge dispatcher and Advance is
// called once per frame to fire timers.
type Controller struct {
	m      Machine
	ch     bridge.Channel
	logger *game_log.Logger
	now    func() time.Time

	deadline time.Time
	armed    bool
	unsubs   []func()
	started  bool

	onActivated func()
	// OnChange, when set, runs after every handled event.
	OnChange func(*Machine)
}

func NewController(ch bridge.Channel, logger *game_log.Logger, onActivated func()) *Controller {
	return &Controller{
		ch:          ch,
		logger:      logger.With("activation"),
		now:         time.Now,
		onActivated: onActivated,
	}
}

// SetClock replaces the time source, for tests and replays.
func (c *Controller) SetClock(now func() time.Time) { c.now = now }

// Start begins the handshake. With devSkip and no host present the
// handshake is skipped and completion fires after DevSkipDelay.
func (c *Controller) Start(devSkip bool) {
	if c.started {
		return
	}
	c.started = true
	if devSkip && !c.ch.Connected() {
		c.logger.Infof("no host, skipping activation")
		c.dispatch(Skipped{})
		return
	}
	c.unsubs = append(c.unsubs,
		c.ch.Subscribe(bridge.EventActivationState, func(p any) { c.dispatch(decodeState(p)) }),
		c.ch.Subscribe(bridge.EventActivationResult, func(p any) { c.dispatch(decodeResult(p)) }),
	)
	if err := c.ch.Send(bridge.EventGetActivationStatus, bridge.Payload{}); err != nil {
		c.logger.Errorf("request status: %v", err)
	}
}

// Submit asks the host to activate code.
func (c *Controller) Submit(code string) { c.dispatch(Submitted{Code: code}) }

// Retry leaves the error screen.
func (c *Controller) Retry() { c.dispatch(Retried{}) }

// Advance fires an elapsed completion timer.
func (c *Controller) Advance() {
	if c.armed && !c.now().Before(c.deadline) {
		c.armed = false
		c.dispatch(TimerFired{})
	}
}

// Stop detaches from the host. It is safe to call more than once.
func (c *Controller) Stop() {
	for _, u := range c.unsubs {
		u()
	}
	c.unsubs = nil
	c.armed = false
}

func (c *Controller) Machine() *Machine { return &c.m }

func (c *Controller) dispatch(ev Event) {
	before := c.m.Screen()
	effects := c.m.Handle(ev)
	if after := c.m.Screen(); after != before {
		c.logger.Infof("%s -> %s", before, after)
	}
	for _, eff := range effects {
		switch eff := eff.(type) {
		case SendActivate:
			if err := c.ch.Send(bridge.EventActivateLicense, bridge.Payload{"code": eff.Code}); err != nil {
				c.logger.Errorf("activate: %v", err)
			}
		case ScheduleCompletion:
			c.deadline = c.now().Add(eff.After)
			c.armed = true
		case Complete:
			c.Stop()
			c.logger.Infof("activation complete")
			if c.onActivated != nil {
				c.onActivated()
			}
		}
	}
	if c.OnChange != nil {
		c.OnChange(&c.m)
	}
}

func decodeInfo(p any) *Info {
	m := bridge.Object(bridge.Object(p)["info"])
	if m == nil {
		return nil
	}
	valid, _ := bridge.Bool(m, "isValid")
	return &Info{
		ActivationCode:     bridge.String(m, "activationCode"),
		MachineID:          bridge.String(m, "machineId"),
		ActivatedAt:        bridge.String(m, "activatedAt"),
		CurrentActivations: int(bridge.FloatOr(m, "currentActivations", 0)),
		MaxActivations:     int(bridge.FloatOr(m, "maxActivations", 0)),
		IsValid:            valid,
	}
}

func decodeState(p any) StateReceived {
	configured, _ := bridge.Bool(p, "isConfigured")
	activated, _ := bridge.Bool(p, "isActivated")
	return StateReceived{Configured: configured, Activated: activated, Info: decodeInfo(p)}
}

func decodeResult(p any) ResultReceived {
	return ResultReceived{Status: bridge.String(p, "status"), Info: decodeInfo(p)}
}
