// Package envelope smooths telemetry with exponential followers.
package envelope

import "github.com/ingyamilmolinar/drift/internal/utils"

// Rates used by the visualisation.
const (
	LevelAttack    = 0.35
	LevelRelease   = 0.06
	DriftRate      = 0.03
	OpacityAttack  = 0.15
	OpacityRelease = 0.04
	// NoiseFloor is the level below which a channel reads as silent.
	NoiseFloor = 0.02
)

// Follower moves Current toward a target by Attack when rising and by
// Release when falling. Rates are fractions of the gap per step in (0,1].
type Follower struct {
	Attack  float64
	Release float64
	Current float64
	Target  float64
}

// NewLevel is a fast-rise, slow-fall follower for meter-like channels.
func NewLevel() Follower { return Follower{Attack: LevelAttack, Release: LevelRelease} }

// NewSymmetric uses one rate in both directions.
func NewSymmetric(rate float64) Follower { return Follower{Attack: rate, Release: rate} }

// NewOpacity is the follower behind echo ribbon fades.
func NewOpacity() Follower { return Follower{Attack: OpacityAttack, Release: OpacityRelease} }

// Push records the newest sample. Only the last push before Step counts.
func (f *Follower) Push(target float64) { f.Target = utils.Finite(target) }

// Step advances one tick and returns the new value.
func (f *Follower) Step() float64 {
	rate := f.Release
	if f.Target > f.Current {
		rate = f.Attack
	}
	f.Current += (f.Target - f.Current) * utils.Clamp(rate, 0, 1)
	return f.Current
}

// Next pushes target and steps once.
func (f *Follower) Next(target float64) float64 {
	f.Push(target)
	return f.Step()
}

// Reset snaps both current and target to v.
func (f *Follower) Reset(v float64) {
	v = utils.Finite(v)
	f.Current, f.Target = v, v
}

// Bank is a fixed set of followers addressed by index.
type Bank []Follower

// NewBank returns n copies of proto.
func NewBank(n int, proto Follower) Bank {
	b := make(Bank, n)
	for i := range b {
		b[i] = proto
	}
	return b
}

// Step advances every follower once.
func (b Bank) Step() {
	for i := range b {
		b[i].Step()
	}
}

// Value is the current value at i, or 0 out of range.
func (b Bank) Value(i int) float64 {
	if i < 0 || i >= len(b) {
		return 0
	}
	return b[i].Current
}

func (b Bank) Reset(v float64) {
	for i := range b {
		b[i].Reset(v)
	}
}
