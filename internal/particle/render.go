package particle

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	background = colorful.Color{R: 0.04, G: 0.04, B: 0.04}
	linkColor  = colorful.Color{R: 0, G: 1, B: 136.0 / 255}
)

// Render paints links first, then particles on top. Field coordinates are
// scaled to the surface's cell grid. The caller owns Clear and Show.
func (f *Field) Render() {
	if f.surface == nil {
		return
	}
	cols, rows := f.surface.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	sx := float64(cols) / f.cfg.Bounds.W
	sy := float64(rows) / f.cfg.Bounds.H

	for _, l := range f.Links() {
		a, b := f.particles[l.A], f.particles[l.B]
		steps := int(l.Dist / linkStepUnits)
		style := tcell.StyleDefault.Foreground(toTcell(background.BlendRgb(linkColor, l.Opacity/linkOpacity)))
		for step := 0; step < steps; step++ {
			t := float64(step) / float64(steps)
			x := int((a.X + (b.X-a.X)*t) * sx)
			y := int((a.Y + (b.Y-a.Y)*t) * sy)
			f.put(x, y, cols, rows, '·', style)
		}
	}

	for _, p := range f.particles {
		style := tcell.StyleDefault.Foreground(toTcell(background.BlendRgb(p.Color, p.Brightness())))
		f.put(int(p.X*sx), int(p.Y*sy), cols, rows, glyphFor(p), style)
	}
}

func (f *Field) put(x, y, cols, rows int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	f.surface.SetContent(x, y, r, nil, style)
}

// glyphFor picks a cell glyph: pixelated particles are blocky, bigger ones heavier.
func glyphFor(p Particle) rune {
	switch {
	case p.Pixelated && p.Size >= 8:
		return '█'
	case p.Pixelated:
		return '▪'
	case p.Size >= 8:
		return '●'
	default:
		return '•'
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
