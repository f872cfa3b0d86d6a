// Package gesture turns pointer and wheel input into parameter values and
// owns the global pointer capture used while a drag is live.
package gesture

import "github.com/ingyamilmolinar/drift/internal/utils"

// DragDivisor is the pointer travel, in pixels, that sweeps a full range.
const DragDivisor = 150.0

// Arc geometry in degrees, 0 pointing up, clockwise positive.
const (
	ArcStart = -135.0
	ArcSweep = 270.0
)

// Drag maps a vertical drag to a value. Deltas are measured from the
// pointer-down position, never accumulated per move, so a long drag does
// not drift. A non-positive divisor falls back to DragDivisor.
func Drag(startValue, startY, y, lo, hi, divisor float64) float64 {
	if divisor <= 0 {
		divisor = DragDivisor
	}
	delta := (startY - y) / divisor
	return utils.Clamp(startValue+delta*(hi-lo), lo, hi)
}

// Wheel applies one wheel delta as a fine adjustment: a delta of 1 moves
// a thousandth of the range. Positive deltas lower the value.
func Wheel(value, delta, lo, hi float64) float64 {
	return utils.Clamp(value-utils.Finite(delta)*(hi-lo)/100*0.1, lo, hi)
}

// Angle is the indicator angle for a normalized value.
func Angle(n float64) float64 {
	return ArcStart + utils.Clamp(n, 0, 1)*ArcSweep
}

// Arc returns the start and end angles of the active arc. Unipolar arcs
// grow from the minimum; bipolar arcs grow from the centre toward the
// value. from <= to always holds.
func Arc(n float64, bipolar bool) (from, to float64) {
	a := Angle(n)
	if !bipolar {
		return ArcStart, a
	}
	c := Angle(0.5)
	if a < c {
		return a, c
	}
	return c, a
}
