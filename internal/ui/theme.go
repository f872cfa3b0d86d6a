package ui

import "image/color"

var (
	colBG        = color.RGBA{13, 13, 26, 255}
	colPanel     = color.RGBA{22, 24, 38, 255}
	colPanelEdge = color.RGBA{48, 52, 74, 255}
	colText      = color.RGBA{220, 224, 235, 255}
	colTextDim   = color.RGBA{130, 136, 160, 255}

	colAccent   = color.RGBA{90, 200, 230, 255}
	colTrack    = color.RGBA{48, 52, 74, 255}
	colFreeze   = color.RGBA{100, 200, 255, 255}
	colBypass   = color.RGBA{230, 150, 60, 255}
	colError    = color.RGBA{230, 80, 80, 255}
	colSuccess  = color.RGBA{80, 210, 140, 255}
	colDisabled = color.RGBA{70, 74, 92, 255}

	colButtonBorder = color.RGBA{200, 205, 220, 255}

	colorWhite = color.White
)

const (
	debugCharW = 6  // width of a character drawn by DebugPrintAt
	debugCharH = 16 // line height of DebugPrintAt
)

// fade scales a colour's alpha by a in [0,1].
func fade(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	// premultiplied: scale every channel
	return color.RGBA{uint8(float64(c.R) * a), uint8(float64(c.G) * a), uint8(float64(c.B) * a), uint8(float64(c.A) * a)}
}
