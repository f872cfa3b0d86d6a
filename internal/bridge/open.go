package bridge

import game_log "github.com/ingyamilmolinar/drift/internal/log"

// Open returns a bus connected to the host when one is detected. Otherwise
// the bus runs over a new Synthetic host, which is returned so the caller
// can drive its telemetry clock. Detection never fails; absence of the host
// only selects the fallback.
func Open(opts SyntheticOptions, logger *game_log.Logger) (*Bus, *Synthetic) {
	if t, ok := detect(); ok {
		logger.With("bridge").Infof("host transport detected")
		return NewBus(t, true, logger), nil
	}
	logger.With("bridge").Infof("no host transport, using synthetic host")
	s := NewSynthetic(opts, logger)
	return NewBus(s, false, logger), s
}
