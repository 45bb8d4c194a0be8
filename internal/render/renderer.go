// Package render draws a session onto a tcell screen: the particle field
// fills the background and the HUD panes sit on top of it.
package render

import (
	"pumpalien/internal/narrative"
	"pumpalien/internal/particle"

	"github.com/gdamore/tcell/v2"
)

// View carries the per-frame UI state owned by the input loop.
type View struct {
	Prompt      string // non-empty while the player is typing
	Input       []rune
	ShowConsole bool
}

// Renderer draws frames onto one screen.
type Renderer struct {
	screen tcell.Screen
	layout Layout
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{screen: screen, layout: ComputeLayout(w, h)}
}

// Layout returns the panes used by the last frame.
func (r *Renderer) Layout() Layout { return r.layout }

// DrawFrame renders the field and the HUD, then shows the screen. field may
// be nil.
func (r *Renderer) DrawFrame(st *narrative.State, field *particle.Field, v View) {
	w, h := r.screen.Size()
	r.layout = ComputeLayout(w, h)
	r.screen.Clear()

	if field != nil {
		field.Render()
	}
	r.drawTitle(r.layout.Title, st)
	r.drawChapters(r.layout.Chapters, st)
	if v.ShowConsole {
		r.drawTerminal(r.layout.Story, st.TerminalLines())
	} else {
		r.drawStory(r.layout.Story, st)
		r.drawRevelation(r.layout.Story, st)
	}
	r.drawMessages(r.layout.Messages, st.RecentMessages())
	r.drawInput(r.layout.Input, v)

	r.screen.Show()
}
