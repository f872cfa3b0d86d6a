package bridge

import (
	"fmt"
	"sync"

	game_log "github.com/ingyamilmolinar/drift/internal/log"
)

type subscription struct {
	id int
	h  Handler
}

type route struct {
	subs []subscription
	stop func()
}

// Bus multiplexes any number of handlers per event over a Transport that
// only supports one listener per event. Inbound payloads are handed to the
// dispatcher, which defaults to calling the handlers inline.
type Bus struct {
	mu        sync.Mutex
	transport Transport
	routes    map[string]*route
	nextID    int
	closed    bool
	connected bool
	dispatch  func(func())
	logger    *game_log.Logger
}

// NewBus wraps t. connected reports whether t is a real host.
func NewBus(t Transport, connected bool, logger *game_log.Logger) *Bus {
	return &Bus{
		transport: t,
		routes:    map[string]*route{},
		connected: connected,
		dispatch:  func(f func()) { f() },
		logger:    logger.With("bridge"),
	}
}

// SetDispatcher routes inbound deliveries through d, typically the event
// loop's Post so host callbacks never run in the middle of a frame.
func (b *Bus) SetDispatcher(d func(func())) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d == nil {
		d = func(f func()) { f() }
	}
	b.dispatch = d
}

func (b *Bus) Connected() bool { return b.connected }

// Send forwards an outbound event to the transport.
func (b *Bus) Send(event string, payload any) error {
	b.mu.Lock()
	closed := b.closed
	t := b.transport
	b.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if err := t.Emit(event, payload); err != nil {
		return fmt.Errorf("send %s: %w", event, err)
	}
	b.logger.Debugf("sent %s %v", event, payload)
	return nil
}

// Subscribe registers h for event and returns a function that removes it.
// The returned function is safe to call more than once.
func (b *Bus) Subscribe(event string, h Handler) func() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return func() {}
	}
	b.nextID++
	id := b.nextID
	r, ok := b.routes[event]
	if !ok {
		r = &route{}
		b.routes[event] = r
	}
	r.subs = append(r.subs, subscription{id: id, h: h})
	first := !ok
	b.mu.Unlock()

	if first {
		stop := b.transport.Listen(event, func(p any) { b.deliver(event, p) })
		b.mu.Lock()
		if cur, ok := b.routes[event]; ok && cur == r && !b.closed {
			r.stop = stop
			stop = nil
		}
		b.mu.Unlock()
		if stop != nil {
			// route vanished while we were registering
			stop()
		}
	}

	var once sync.Once
	return func() { once.Do(func() { b.unsubscribe(event, id) }) }
}

func (b *Bus) unsubscribe(event string, id int) {
	b.mu.Lock()
	r, ok := b.routes[event]
	if !ok {
		b.mu.Unlock()
		return
	}
	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			break
		}
	}
	var stop func()
	if len(r.subs) == 0 {
		delete(b.routes, event)
		stop = r.stop
	}
	b.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func (b *Bus) deliver(event string, payload any) {
	b.mu.Lock()
	d := b.dispatch
	b.mu.Unlock()
	d(func() {
		b.mu.Lock()
		r, ok := b.routes[event]
		var subs []subscription
		if ok {
			subs = append(subs, r.subs...)
		}
		b.mu.Unlock()
		for _, s := range subs {
			s.h(payload)
		}
	})
}

// Subscribers reports the live handler count for event.
func (b *Bus) Subscribers(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r, ok := b.routes[event]; ok {
		return len(r.subs)
	}
	return 0
}

// Close detaches every transport listener. Later sends fail with ErrClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	routes := b.routes
	b.routes = map[string]*route{}
	b.mu.Unlock()
	for _, r := range routes {
		if r.stop != nil {
			r.stop()
		}
	}
}
