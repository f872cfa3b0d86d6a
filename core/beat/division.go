// Package beat holds the tempo-division catalog used when the delay time
// is synced to the host tempo, and a metronome that ticks at a division.
package beat

import (
	"time"

	"github.com/ingyamilmolinar/drift/internal/utils"
)

// Division is a named musical subdivision. Beats is its length in quarter
// notes.
type Division struct {
	Name  string
	Beats float64
}

// Longest first, then triplets, then dotted.
var divisions = [...]Division{
	{"1/1", 4},
	{"1/2", 2},
	{"1/4", 1},
	{"1/8", 0.5},
	{"1/16", 0.25},
	{"1/32", 0.125},
	{"1/4T", 4.0 / 3},
	{"1/8T", 2.0 / 3},
	{"1/16T", 1.0 / 3},
	{"1/4D", 1.5},
	{"1/8D", 0.75},
	{"1/16D", 0.375},
}

// Count is the number of divisions in the catalog.
const Count = len(divisions)

// DefaultIndex selects 1/4.
const DefaultIndex = 2

// Clamp bounds i to a valid catalog index.
func Clamp(i int) int { return utils.ClampInt(i, 0, Count-1) }

// At returns the division at i, clamped into the catalog.
func At(i int) Division { return divisions[Clamp(i)] }

// Step moves i by delta and clamps the result.
func Step(i, delta int) int { return Clamp(Clamp(i) + delta) }

// Names lists division names in catalog order.
func Names() []string {
	out := make([]string, Count)
	for i, d := range divisions {
		out[i] = d.Name
	}
	return out
}

// Millis is the length of d at bpm, in milliseconds. Non-positive tempos
// yield 0.
func (d Division) Millis(bpm float64) float64 {
	if bpm <= 0 {
		return 0
	}
	return 60000 / bpm * d.Beats
}

// Duration is Millis as a time.Duration.
func (d Division) Duration(bpm float64) time.Duration {
	return time.Duration(d.Millis(bpm) * float64(time.Millisecond))
}
