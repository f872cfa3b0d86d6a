package gesture

// Target is a parameter a gesture can edit.
type Target interface {
	ID() string
	Value() float64
	Range() (lo, hi float64)
	Set(v float64)
	BeginGesture()
	EndGesture()
}

// StartDrag opens a gesture on t anchored at pointer y and returns the
// grab that carries it. Moves set the value; releasing the grab, by
// pointer-up or ReleaseAll, closes the gesture.
func StartDrag(c *Capture, t Target, y, divisor float64) *Grab {
	startValue := t.Value()
	t.BeginGesture()
	return c.Acquire(t.ID(),
		func(_, py float64) {
			lo, hi := t.Range()
			t.Set(Drag(startValue, y, py, lo, hi, divisor))
		},
		t.EndGesture,
	)
}

// ApplyWheel nudges t by one wheel delta. It is not bracketed as a
// gesture.
func ApplyWheel(t Target, delta float64) {
	if delta == 0 {
		return
	}
	lo, hi := t.Range()
	t.Set(Wheel(t.Value(), delta, lo, hi))
}
