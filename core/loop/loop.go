// Package loop is the single-threaded event loop the surface runs on.
// Host callbacks are posted from any goroutine and run at the start of
// the next frame; frame tasks then run in the order they were started.
package loop

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is one frame at 60 Hz.
const DefaultInterval = 16 * time.Millisecond

type Loop struct {
	mu    sync.Mutex
	queue []func()
	spare []func()

	tasks  []*Task
	frames uint64
}

func New() *Loop { return &Loop{} }

// Post queues f for the next frame. It is safe from any goroutine. Work
// posted while a frame drains runs on the frame after.
func (l *Loop) Post(f func()) {
	if f == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, f)
	l.mu.Unlock()
}

// Pending is the number of queued callbacks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Drain runs every queued callback and returns how many ran.
func (l *Loop) Drain() int {
	l.mu.Lock()
	q := l.queue
	l.queue = l.spare[:0]
	l.mu.Unlock()
	for i, f := range q {
		f()
		q[i] = nil
	}
	l.mu.Lock()
	l.spare = q[:0]
	l.mu.Unlock()
	return len(q)
}

// Frame drains the queue, then runs every live task once. Each callback
// and each task runs to completion before the next starts.
func (l *Loop) Frame() {
	l.Drain()
	l.frames++
	live := l.tasks[:0]
	for _, t := range l.tasks {
		if t.cancelled {
			continue
		}
		live = append(live, t)
	}
	for i := len(live); i < len(l.tasks); i++ {
		l.tasks[i] = nil
	}
	l.tasks = live
	for _, t := range l.tasks {
		if !t.cancelled {
			t.fn()
		}
	}
}

// Frames counts completed frames.
func (l *Loop) Frames() uint64 { return l.frames }

// Tasks is the number of live frame tasks.
func (l *Loop) Tasks() int {
	n := 0
	for _, t := range l.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Task is a frame callback that repeats every frame until cancelled.
type Task struct {
	name      string
	fn        func()
	cancelled bool
}

// Start registers fn to run every frame.
func (l *Loop) Start(name string, fn func()) *Task {
	t := &Task{name: name, fn: fn}
	l.tasks = append(l.tasks, t)
	return t
}

// Cancel stops the task. A task cancelled during a frame does not run
// again, including later in the same frame.
func (t *Task) Cancel() { t.cancelled = true }

func (t *Task) Active() bool { return !t.cancelled }

func (t *Task) Name() string { return t.name }

// Run drives frames from a ticker until ctx is done. It is for front ends
// that do not have their own frame callback.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Frame()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
