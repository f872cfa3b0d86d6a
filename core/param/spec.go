// Package param describes the plugin's parameters and mirrors their
// host-owned values through the bridge.
package param

import (
	"fmt"
	"math"

	"github.com/ingyamilmolinar/drift/internal/bridge"
	"github.com/ingyamilmolinar/drift/internal/utils"
)

type Kind int

const (
	KindSlider Kind = iota
	KindToggle
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindSlider:
		return "slider"
	case KindToggle:
		return "toggle"
	case KindChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Spec is the static description of one parameter. Toggles span [0,1];
// choices span [0,len(Items)-1] with a step of 1.
type Spec struct {
	ID       string
	Label    string
	Kind     Kind
	Min      float64
	Max      float64
	Default  float64
	Step     float64
	Unit     string
	Decimals int
	Bipolar  bool
	Items    []string
}

// Event is the relay event name the host attaches this parameter to.
func (s Spec) Event() string {
	switch s.Kind {
	case KindToggle:
		return bridge.ToggleEvent(s.ID)
	case KindChoice:
		return bridge.ComboBoxEvent(s.ID)
	default:
		return bridge.SliderEvent(s.ID)
	}
}

// Clamp bounds v to [Min,Max] and snaps it to Step when one is set.
func (s Spec) Clamp(v float64) float64 {
	return clampStep(v, s.Min, s.Max, s.Step)
}

func clampStep(v, lo, hi, step float64) float64 {
	v = utils.Clamp(v, lo, hi)
	if step > 0 {
		v = lo + math.Round((v-lo)/step)*step
		v = utils.Clamp(v, lo, hi)
	}
	return v
}

// Normalize maps v into [0,1].
func (s Spec) Normalize(v float64) float64 {
	return normalize(v, s.Min, s.Max)
}

func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return utils.Clamp((v-lo)/(hi-lo), 0, 1)
}

// Format renders v for display: "400 ms", "+3 st", "1/4", "ON".
func (s Spec) Format(v float64) string {
	switch s.Kind {
	case KindToggle:
		if v > 0.5 {
			return "ON"
		}
		return "OFF"
	case KindChoice:
		i := int(s.Clamp(v))
		if i >= 0 && i < len(s.Items) {
			return s.Items[i]
		}
		return fmt.Sprintf("%d", i)
	}
	num := fmt.Sprintf("%.*f", s.Decimals, v)
	if s.Bipolar && v > 0 && num != fmt.Sprintf("%.*f", s.Decimals, 0.0) {
		num = "+" + num
	}
	switch s.Unit {
	case "":
		return num
	case "%":
		return num + "%"
	default:
		return num + " " + s.Unit
	}
}
