package render

import (
	"pumpalien/internal/energy"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette of the HUD: neon green, cyan and magenta.
var (
	colorAccent   = hex("#00ff88")
	colorTitle    = hex("#00e5ff")
	colorDim      = hex("#5a6b7a")
	colorHuman    = hex("#ffd700")
	colorSystem   = hex("#b8f5ff")
	colorTerminal = hex("#33ff66")
	colorAlert    = hex("#ff0044")
	colorTruth    = hex("#ff0088")
)

// statusColors tints the energy bar by band.
var statusColors = map[energy.Status]tcell.Color{
	energy.StatusLow:      hex("#00ff88"),
	energy.StatusMedium:   hex("#ffd700"),
	energy.StatusHigh:     hex("#ff6b35"),
	energy.StatusCritical: hex("#ff0044"),
}

var lockedGray = colorful.Color{R: 0.35, G: 0.35, B: 0.38}

// chapterColor returns a chapter's theme color, washed toward gray while the
// chapter is locked. Unparseable values fall back to the accent color.
func chapterColor(value string, unlocked bool) tcell.Color {
	c, err := colorful.Hex(value)
	if err != nil {
		return colorAccent
	}
	if !unlocked {
		c = c.BlendLab(lockedGray, 0.65)
	}
	return toTcell(c)
}

func hex(value string) tcell.Color {
	c, err := colorful.Hex(value)
	if err != nil {
		return tcell.ColorWhite
	}
	return toTcell(c)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
