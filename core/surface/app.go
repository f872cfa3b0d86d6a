package surface

import (
	"github.com/ingyamilmolinar/drift/core/activation"
	"github.com/ingyamilmolinar/drift/core/loop"
	"github.com/ingyamilmolinar/drift/internal/bridge"
	"github.com/ingyamilmolinar/drift/internal/config"
	game_log "github.com/ingyamilmolinar/drift/internal/log"
)

// App is the whole front-end lifecycle: activation first, then the
// mounted surface. Front ends call Frame once per display frame.
type App struct {
	Loop       *loop.Loop
	Bus        *bridge.Bus
	Synthetic  *bridge.Synthetic
	Activation *activation.Controller
	Surface    *Surface

	logger  *game_log.Logger
	devSkip bool
	gate    *loop.Task
	closed  bool
}

// NewApp opens the bridge, falling back to the synthetic host, and wires
// host callbacks into the loop.
func NewApp(cfg *config.Config, logger *game_log.Logger) *App {
	bus, synth := bridge.Open(cfg.Synthetic.Options(), logger)
	return newApp(bus, synth, cfg, logger)
}

func newApp(bus *bridge.Bus, synth *bridge.Synthetic, cfg *config.Config, logger *game_log.Logger) *App {
	lp := loop.New()
	bus.SetDispatcher(lp.Post)
	a := &App{
		Loop:      lp,
		Bus:       bus,
		Synthetic: synth,
		logger:    logger.With("app"),
		devSkip:   cfg.DevSkipActivation,
	}
	a.Surface = New(bus, lp, logger, Options{
		Width:       float64(cfg.Width),
		Height:      float64(cfg.Height) * 0.45,
		Seed:        cfg.Seed,
		DragDivisor: cfg.DragDivisor,
		BPM:         cfg.BPM,
	})
	if synth != nil {
		a.Surface.AttachSynthetic(synth)
	}
	a.Activation = activation.NewController(bus, logger, a.activated)
	return a
}

// Start begins the activation handshake. The surface mounts when it
// completes.
func (a *App) Start() {
	a.gate = a.Loop.Start("activation", a.Activation.Advance)
	a.Activation.Start(a.devSkip)
}

func (a *App) activated() {
	if a.gate != nil {
		a.gate.Cancel()
		a.gate = nil
	}
	if a.closed {
		return
	}
	a.Surface.Mount()
}

// Activated reports whether the surface is mounted.
func (a *App) Activated() bool { return a.Surface.Mounted() }

// Frame runs one loop frame.
func (a *App) Frame() { a.Loop.Frame() }

// Close unmounts the surface and detaches from the host.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.Surface.Unmount()
	a.Activation.Stop()
	if a.gate != nil {
		a.gate.Cancel()
	}
	a.Bus.Close()
}
