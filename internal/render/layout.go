package render

// Rect is a screen region in cells.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether nothing fits in r.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Layout splits the screen into the HUD panes. The particle field is drawn
// under all of them.
type Layout struct {
	Title    Rect
	Chapters Rect
	Story    Rect
	Messages Rect
	Input    Rect
}

// Pane sizing.
const (
	chapterPaneWidth = 30
	messageRows      = 5
	minSideBySide    = 64 // narrower screens drop the chapter pane
)

// ComputeLayout fits the panes into a w×h screen. Tiny screens yield empty
// rects rather than negative sizes.
func ComputeLayout(w, h int) Layout {
	var l Layout
	if w <= 0 || h <= 0 {
		return l
	}
	l.Title = Rect{0, 0, w, 1}
	l.Input = Rect{0, h - 1, w, 1}

	msgH := min(messageRows, max(0, h-4))
	l.Messages = Rect{0, h - 1 - msgH, w, msgH}

	midY := 1
	midH := max(0, l.Messages.Y-1-midY) // one separator row above messages
	if w >= minSideBySide {
		l.Chapters = Rect{0, midY, chapterPaneWidth, midH}
		l.Story = Rect{chapterPaneWidth + 1, midY, w - chapterPaneWidth - 1, midH}
	} else {
		l.Story = Rect{0, midY, w, midH}
	}
	return l
}
