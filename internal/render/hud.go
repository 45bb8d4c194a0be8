package render

import (
	"fmt"
	"strings"

	"pumpalien/internal/chat"
	"pumpalien/internal/narrative"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const energyBarWidth = 20

// drawTitle renders the story title on the left and the energy gauge on the right.
func (r *Renderer) drawTitle(area Rect, st *narrative.State) {
	if area.Empty() {
		return
	}
	title, _ := st.Story()
	label := "👽 " + title
	if st.Classified() {
		label += "  [CLASSIFIED]"
	}
	r.drawText(area.X, area.Y, area.W, label, tcell.StyleDefault.Foreground(colorTitle).Bold(true))

	level := st.CurrentEnergyLevel()
	status := st.EnergyStatus()
	filled := min(energyBarWidth, int(level/100*energyBarWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", energyBarWidth-filled)
	gauge := fmt.Sprintf("ENERGY %s %5.1f%% %s", bar, level, strings.ToUpper(status.String()))
	x := area.X + area.W - runewidth.StringWidth(gauge)
	if x <= area.X+runewidth.StringWidth(label) {
		return
	}
	r.drawText(x, area.Y, area.W, gauge, tcell.StyleDefault.Foreground(statusColors[status]))
}

// drawChapters lists every chapter with its lock state and progress.
func (r *Renderer) drawChapters(area Rect, st *narrative.State) {
	if area.Empty() {
		return
	}
	cur := st.CurrentChapterIndex()
	for i, c := range st.Chapters() {
		y := area.Y + i*2
		if y+1 >= area.Y+area.H {
			break
		}
		icon := "🔒"
		if c.Unlocked {
			icon = c.Icon
		}
		marker := "  "
		if i == cur {
			marker = "▶ "
		}
		style := tcell.StyleDefault.Foreground(chapterColor(c.Color, c.Unlocked))
		if i == cur {
			style = style.Bold(true)
		}
		r.drawText(area.X, y, area.W, fmt.Sprintf("%s%s %d. %s", marker, icon, i+1, c.Title), style)
		r.drawText(area.X+4, y+1, area.W-4, progressBar(c.Progress, area.W-10), style.Bold(false))
	}
}

func progressBar(progress float64, width int) string {
	if width < 4 {
		return fmt.Sprintf("%3.0f%%", progress)
	}
	filled := min(width, int(progress/100*float64(width)))
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled) + fmt.Sprintf(" %3.0f%%", progress)
}

// drawStory shows the selected chapter, or its lock hint while locked.
func (r *Renderer) drawStory(area Rect, st *narrative.State) {
	if area.Empty() {
		return
	}
	c := st.CurrentChapter()
	color := chapterColor(c.Color, c.Unlocked)
	head := fmt.Sprintf("Chapter %d/%d", c.Index+1, st.ChapterCount())
	r.drawText(area.X, area.Y, area.W, head, tcell.StyleDefault.Foreground(colorDim))
	r.drawText(area.X, area.Y+1, area.W, c.Icon+" "+c.Title, tcell.StyleDefault.Foreground(color).Bold(true))
	if !c.Unlocked {
		hint := fmt.Sprintf("🔒 Locked (%.0f%%)", c.Progress)
		if c.UnlockAt > 0 {
			hint += fmt.Sprintf(" - opens at %.0f%% energy", c.UnlockAt)
		} else if len(c.Requires) > 0 {
			hint += " - needs: " + strings.Join(c.Requires, ", ")
		}
		r.drawText(area.X, area.Y+3, area.W, hint, tcell.StyleDefault.Foreground(colorDim))
		return
	}
	r.drawText(area.X, area.Y+2, area.W, c.Subtitle, tcell.StyleDefault.Foreground(colorSystem).Italic(true))
	for i, line := range wrap(c.Body, area.W) {
		y := area.Y + 4 + i
		if y >= area.Y+area.H {
			break
		}
		r.drawText(area.X, y, area.W, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
}

// drawTerminal replaces the story pane with the console scrollback.
func (r *Renderer) drawTerminal(area Rect, lines []chat.Message) {
	if area.Empty() {
		return
	}
	r.fill(area, tcell.StyleDefault.Background(tcell.ColorBlack))
	style := tcell.StyleDefault.Foreground(colorTerminal).Background(tcell.ColorBlack)
	start := max(0, len(lines)-area.H)
	for i, m := range lines[start:] {
		r.drawText(area.X, area.Y+i, area.W, m.Text, style)
	}
}

// drawMessages renders the newest messages that fit, oldest at the top.
func (r *Renderer) drawMessages(area Rect, msgs []chat.Message) {
	if area.Empty() {
		return
	}
	r.drawHLine(area.Y-1, area.X, area.W, colorDim)
	start := max(0, len(msgs)-area.H)
	for i, m := range msgs[start:] {
		prefix, color := "", colorSystem
		if m.Sender == chat.SenderHuman {
			prefix, color = "you> ", colorHuman
		}
		line := m.At.Format("15:04:05") + " " + prefix + m.Text
		r.drawText(area.X, area.Y+i, area.W, line, tcell.StyleDefault.Foreground(color))
	}
}

// drawRevelation overlays the current revelation, or the final truth, in the
// middle of the story pane.
func (r *Renderer) drawRevelation(area Rect, st *narrative.State) {
	if area.Empty() || !st.IsTruthRevealed() {
		return
	}
	var lines []string
	style := tcell.StyleDefault.Foreground(colorAlert).Background(tcell.ColorBlack).Bold(true)
	if rev, ok := st.CurrentRevelation(); ok {
		lines = append(lines, fmt.Sprintf("%s %s  (%d/%d)", rev.Icon, rev.Title, rev.Index+1, rev.Total))
		lines = append(lines, wrap(rev.Content, area.W-4)...)
		lines = append(lines, "Impact: "+rev.Impact)
	} else if st.FinalTruthShown() {
		style = style.Foreground(colorTruth)
		lines = append(lines, "👁 FINAL TRUTH")
		lines = append(lines, wrap(st.FinalTruth(), area.W-4)...)
	} else {
		return
	}
	top := area.Y + max(0, (area.H-len(lines)-2)/2)
	box := Rect{area.X, top, area.W, min(area.H, len(lines)+2)}
	r.fill(box, tcell.StyleDefault.Background(tcell.ColorBlack))
	for i, line := range lines {
		if 1+i >= box.H {
			break
		}
		r.drawText(box.X+2, box.Y+1+i, box.W-4, line, style)
	}
}

// drawInput renders the prompt while typing, or the key hints otherwise.
func (r *Renderer) drawInput(area Rect, v View) {
	if area.Empty() {
		return
	}
	if v.Prompt != "" {
		text := v.Prompt + string(v.Input) + "_"
		r.drawText(area.X, area.Y, area.W, text, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
		return
	}
	r.drawText(area.X, area.Y, area.W, keyHints, tcell.StyleDefault.Foreground(colorDim))
}

const keyHints = "1-8 interact  ←/→ chapters  t talk  / console  x classified  space reveal  m token  R reset  q quit"

func (r *Renderer) drawHLine(y, x, w int, color tcell.Color) {
	style := tcell.StyleDefault.Foreground(color)
	for col := x; col < x+w; col++ {
		r.screen.SetContent(col, y, '─', nil, style)
	}
}

func (r *Renderer) fill(area Rect, style tcell.Style) {
	for y := area.Y; y < area.Y+area.H; y++ {
		for x := area.X; x < area.X+area.W; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText writes text from (x, y), clipped to maxW columns. Wide runes take
// two cells; zero-width runes such as variation selectors are dropped.
func (r *Renderer) drawText(x, y, maxW int, text string, style tcell.Style) {
	if maxW <= 0 {
		return
	}
	text = runewidth.Truncate(text, maxW, "…")
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.screen.SetContent(col, y, ch, nil, style)
		if w == 2 {
			r.screen.SetContent(col+1, y, ' ', nil, style)
		}
		col += w
	}
}

// wrap breaks text into lines no wider than width columns.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur strings.Builder
	curW := 0
	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		if curW > 0 && curW+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += ww
	}
	if curW > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
