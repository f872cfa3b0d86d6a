package param

import "github.com/ingyamilmolinar/drift/core/beat"

// Parameter IDs as registered by the processor.
const (
	Time     = "time"
	Sync     = "sync"
	Division = "division"
	Feedback = "feedback"
	Duck     = "duck"
	Taps     = "taps"
	Spread   = "spread"
	Mix      = "mix"
	Grit     = "grit"
	Age      = "age"
	Diffuse  = "diffuse"
	Pitch    = "pitch"
	Output   = "output"
	Freeze   = "freeze"
	Bypass   = "bypass"
)

func percent(id, label string, def float64) Spec {
	return Spec{ID: id, Label: label, Kind: KindSlider, Min: 0, Max: 100, Default: def, Unit: "%"}
}

func toggle(id, label string) Spec {
	return Spec{ID: id, Label: label, Kind: KindToggle, Min: 0, Max: 1, Step: 1}
}

// Catalog returns every parameter in display order. The slice is fresh on
// each call.
func Catalog() []Spec {
	return []Spec{
		{ID: Time, Label: "TIME", Kind: KindSlider, Min: 10, Max: 2000, Default: 400, Unit: "ms"},
		toggle(Sync, "SYNC"),
		{ID: Division, Label: "DIV", Kind: KindChoice, Min: 0, Max: float64(beat.Count - 1), Default: beat.DefaultIndex, Step: 1, Items: beat.Names()},
		percent(Feedback, "FEEDBACK", 40),
		percent(Duck, "DUCK", 0),
		{ID: Taps, Label: "TAPS", Kind: KindSlider, Min: 1, Max: 4, Default: 2, Step: 1},
		percent(Spread, "SPREAD", 50),
		percent(Mix, "MIX", 35),
		percent(Grit, "GRIT", 0),
		percent(Age, "AGE", 25),
		percent(Diffuse, "DIFFUSE", 0),
		{ID: Pitch, Label: "PITCH", Kind: KindSlider, Min: -24, Max: 24, Default: 0, Unit: "st", Bipolar: true},
		{ID: Output, Label: "OUTPUT", Kind: KindSlider, Min: -24, Max: 12, Default: 0, Unit: "dB", Decimals: 1, Bipolar: true},
		toggle(Freeze, "FREEZE"),
		toggle(Bypass, "BYPASS"),
	}
}

// Lookup finds a catalog entry by ID.
func Lookup(id string) (Spec, bool) {
	for _, s := range Catalog() {
		if s.ID == id {
			return s, true
		}
	}
	return Spec{}, false
}
