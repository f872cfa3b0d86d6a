package gesture

import (
	"math"
	"math/rand"
	"testing"
)

type fakeTarget struct {
	id      string
	v       float64
	lo, hi  float64
	begins  int
	ends    int
	history []float64
}

func (f *fakeTarget) ID() string                { return f.id }
func (f *fakeTarget) Value() float64            { return f.v }
func (f *fakeTarget) Range() (float64, float64) { return f.lo, f.hi }
func (f *fakeTarget) BeginGesture()             { f.begins++ }
func (f *fakeTarget) EndGesture()               { f.ends++ }
func (f *fakeTarget) Set(v float64) {
	if v < f.lo {
		v = f.lo
	}
	if v > f.hi {
		v = f.hi
	}
	f.v = v
	f.history = append(f.history, v)
}

func TestDragIsStartAnchored(t *testing.T) {
	// 150px up sweeps the whole range
	if got := Drag(0, 300, 150, 0, 100, 0); got != 100 {
		t.Fatalf("full sweep = %v", got)
	}
	if got := Drag(50, 300, 330, 0, 100, 150); math.Abs(got-30) > 1e-9 {
		t.Fatalf("30px down from 50 = %v, want 30", got)
	}
	// result depends only on start and current position
	a := Drag(400, 200, 120, 10, 2000, 150)
	b := Drag(400, 200, 120, 10, 2000, 150)
	if a != b {
		t.Fatalf("drag is not a pure function")
	}
}

func TestWheelIsFine(t *testing.T) {
	if got := Wheel(50, 1, 0, 100); math.Abs(got-49.9) > 1e-9 {
		t.Fatalf("wheel down one = %v, want 49.9", got)
	}
	if got := Wheel(50, -1, 0, 100); math.Abs(got-50.1) > 1e-9 {
		t.Fatalf("wheel up one = %v, want 50.1", got)
	}
	if got := Wheel(0, 5, 0, 100); got != 0 {
		t.Fatalf("wheel below min = %v", got)
	}
	if got := Wheel(50, math.NaN(), 0, 100); got != 50 {
		t.Fatalf("NaN wheel moved value: %v", got)
	}
}

func TestAngleMonotonicAndBijective(t *testing.T) {
	if Angle(0) != -135 || Angle(1) != 135 || Angle(0.5) != 0 {
		t.Fatalf("endpoints wrong: %v %v %v", Angle(0), Angle(0.5), Angle(1))
	}
	prev := Angle(0)
	for i := 1; i <= 1000; i++ {
		n := float64(i) / 1000
		a := Angle(n)
		if a <= prev {
			t.Fatalf("angle not strictly increasing at %v", n)
		}
		if back := (a - ArcStart) / ArcSweep; math.Abs(back-n) > 1e-12 {
			t.Fatalf("angle not invertible at %v", n)
		}
		prev = a
	}
}

func TestArc(t *testing.T) {
	if from, to := Arc(0.25, false); from != -135 || to != Angle(0.25) {
		t.Fatalf("unipolar arc = %v..%v", from, to)
	}
	if from, to := Arc(0.25, true); from != Angle(0.25) || to != 0 {
		t.Fatalf("bipolar arc below centre = %v..%v", from, to)
	}
	if from, to := Arc(0.75, true); from != 0 || to != Angle(0.75) {
		t.Fatalf("bipolar arc above centre = %v..%v", from, to)
	}
}

func TestDragSessionLifecycle(t *testing.T) {
	c := NewCapture()
	tg := &fakeTarget{id: "mix", v: 50, lo: 0, hi: 100}
	g := StartDrag(c, tg, 200, DragDivisor)
	if tg.begins != 1 || c.Active() != 1 || !c.Held("mix") {
		t.Fatalf("drag did not open: begins=%d active=%d", tg.begins, c.Active())
	}
	// moves far outside any widget still land
	c.Move(-5000, 170)
	if math.Abs(tg.v-70) > 1e-9 {
		t.Fatalf("move value = %v, want 70", tg.v)
	}
	c.Up()
	if tg.ends != 1 || c.Active() != 0 || !g.Released() {
		t.Fatalf("release did not close gesture: ends=%d active=%d", tg.ends, c.Active())
	}
	g.Release()
	c.Move(0, 0)
	if tg.ends != 1 || len(tg.history) != 1 {
		t.Fatalf("released grab still active: ends=%d history=%v", tg.ends, tg.history)
	}
}

func TestReleaseAllEndsEveryGesture(t *testing.T) {
	c := NewCapture()
	a := &fakeTarget{id: "a", lo: 0, hi: 1}
	b := &fakeTarget{id: "b", lo: 0, hi: 1}
	StartDrag(c, a, 0, 0)
	StartDrag(c, b, 0, 0)
	c.ReleaseAll()
	if c.Active() != 0 || a.ends != 1 || b.ends != 1 {
		t.Fatalf("ReleaseAll leaked: active=%d a=%d b=%d", c.Active(), a.ends, b.ends)
	}
}

func TestReleaseOwnerKeepsOtherGrabs(t *testing.T) {
	c := NewCapture()
	a := &fakeTarget{id: "a", lo: 0, hi: 1}
	b := &fakeTarget{id: "b", lo: 0, hi: 1}
	StartDrag(c, a, 0, 0)
	StartDrag(c, b, 0, 0)
	c.ReleaseOwner("a")
	if c.Held("a") || !c.Held("b") || a.ends != 1 || b.ends != 0 {
		t.Fatalf("ReleaseOwner: a held=%v ends=%d b held=%v ends=%d", c.Held("a"), a.ends, c.Held("b"), b.ends)
	}
}

func TestRandomGesturesStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := NewCapture()
	tg := &fakeTarget{id: "time", v: 400, lo: 10, hi: 2000}
	for round := 0; round < 100; round++ {
		if rng.Intn(3) == 0 {
			ApplyWheel(tg, rng.NormFloat64()*50)
		} else {
			StartDrag(c, tg, rng.Float64()*600, DragDivisor)
			for i := 0; i < 20; i++ {
				c.Move(0, rng.Float64()*2000-700)
			}
			c.Up()
		}
		for _, v := range tg.history {
			if v < tg.lo || v > tg.hi {
				t.Fatalf("value escaped range: %v", v)
			}
		}
	}
	if tg.begins != tg.ends {
		t.Fatalf("unbalanced gestures: %d begins, %d ends", tg.begins, tg.ends)
	}
}
