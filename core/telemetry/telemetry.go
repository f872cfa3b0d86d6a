// Package telemetry decodes the host's visualizerData stream.
package telemetry

import (
	"github.com/ingyamilmolinar/drift/internal/bridge"
	"github.com/ingyamilmolinar/drift/internal/utils"
)

// Taps is the number of echo taps the host reports.
const Taps = 4

// Frame is one visualizerData event. Every field is finite; fields the
// host left out or sent malformed are zero.
type Frame struct {
	InputLevel    float64
	DuckEnvelope  float64
	TapLevels     [Taps]float64
	GrainActivity float64
	CurrentPitch  float64
	OutputLevel   float64
	IsFrozen      bool
}

var tapKeys = [Taps]string{"tap1Level", "tap2Level", "tap3Level", "tap4Level"}

func level(p any, key string) float64 {
	return utils.Clamp(bridge.FloatOr(p, key, 0), 0, 1)
}

// Decode reads a payload of any shape. Levels are clamped to [0,1], drift
// to [-1,1] and pitch to ±24 semitones.
func Decode(p any) Frame {
	f := Frame{
		InputLevel:    level(p, "inputLevel"),
		DuckEnvelope:  utils.Clamp(bridge.FloatOr(p, "duckEnvelope", 0), -1, 1),
		GrainActivity: level(p, "grainActivity"),
		CurrentPitch:  utils.Clamp(bridge.FloatOr(p, "currentPitch", 0), -24, 24),
		OutputLevel:   level(p, "outputLevel"),
	}
	for i, k := range tapKeys {
		f.TapLevels[i] = level(p, k)
	}
	f.IsFrozen, _ = bridge.Bool(p, "isFrozen")
	return f
}

// Latest keeps the newest frame. A new event replaces the whole frame.
type Latest struct {
	frame Frame
	count int
}

func (l *Latest) Store(f Frame) {
	l.frame = f
	l.count++
}

func (l *Latest) Frame() Frame { return l.frame }

// Count is the number of frames stored since creation.
func (l *Latest) Count() int { return l.count }

// Subscribe decodes every visualizerData event on ch into l.
func Subscribe(ch bridge.Channel, l *Latest) (unsubscribe func()) {
	return ch.Subscribe(bridge.EventVisualizerData, func(p any) { l.Store(Decode(p)) })
}
