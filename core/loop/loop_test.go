package loop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestPostRunsOnNextFrameInOrder(t *testing.T) {
	l := New()
	var got []int
	l.Post(func() { got = append(got, 1) })
	l.Post(func() { got = append(got, 2) })
	if len(got) != 0 {
		t.Fatalf("posted work ran before a frame")
	}
	l.Frame()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v", got)
	}
}

func TestPostDuringDrainWaitsForNextFrame(t *testing.T) {
	l := New()
	ran := 0
	l.Post(func() { l.Post(func() { ran++ }) })
	l.Frame()
	if ran != 0 || l.Pending() != 1 {
		t.Fatalf("re-posted work ran in the same frame")
	}
	l.Frame()
	if ran != 1 {
		t.Fatalf("re-posted work never ran")
	}
}

func TestQueueRunsBeforeTasks(t *testing.T) {
	l := New()
	var order []string
	l.Start("render", func() { order = append(order, "task") })
	l.Post(func() { order = append(order, "event") })
	l.Frame()
	if len(order) != 2 || order[0] != "event" || order[1] != "task" {
		t.Fatalf("order = %v", order)
	}
}

func TestTaskRepeatsUntilCancelled(t *testing.T) {
	l := New()
	n := 0
	task := l.Start("count", func() { n++ })
	for i := 0; i < 3; i++ {
		l.Frame()
	}
	task.Cancel()
	l.Frame()
	if n != 3 || task.Active() || l.Tasks() != 0 {
		t.Fatalf("n=%d active=%v tasks=%d", n, task.Active(), l.Tasks())
	}
}

func TestCancelInsideFrameSkipsLaterTask(t *testing.T) {
	l := New()
	var second *Task
	ran := false
	l.Start("first", func() { second.Cancel() })
	second = l.Start("second", func() { ran = true })
	l.Frame()
	if ran {
		t.Fatalf("task cancelled earlier in the frame still ran")
	}
}

func TestPostIsGoroutineSafe(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	n := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Post(func() { n++ })
			}
		}()
	}
	wg.Wait()
	l.Frame()
	if n != 800 {
		t.Fatalf("ran %d callbacks, want 800", n)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	frames := make(chan struct{}, 1)
	l.Start("signal", func() {
		select {
		case frames <- struct{}{}:
		default:
		}
	})
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx, time.Millisecond) }()
	select {
	case <-frames:
	case <-time.After(2 * time.Second):
		t.Fatalf("no frame ran")
	}
	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return")
	}
}
