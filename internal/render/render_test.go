package render

import (
	"strings"
	"testing"
	"time"

	"pumpalien/internal/config"
	"pumpalien/internal/narrative"
	"pumpalien/internal/particle"
	"pumpalien/internal/rng"
	"pumpalien/internal/story"

	"github.com/gdamore/tcell/v2"
)

// ─── helpers ──────────────────────────────────────────────────────────────────

// newSimScreen sizes the screen after Init, which resets it to 80x25.
func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	ss.SetSize(w, h)
	t.Cleanup(ss.Fini)
	return ss
}

func newTestState(t *testing.T) *narrative.State {
	t.Helper()
	st, err := narrative.New(config.Default(), story.Default(), rng.New(42), time.Unix(0, 0).UTC(), nil)
	if err != nil {
		t.Fatalf("narrative.New: %v", err)
	}
	st.Effects().MustRegister(narrative.EffectBurst, func() {})
	st.Effects().MustRegister(narrative.EffectChime, func() {})
	return st
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := range w {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range h {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

// ─── layout ───────────────────────────────────────────────────────────────────

func TestComputeLayout(t *testing.T) {
	cases := []struct {
		name         string
		w, h         int
		wantChapters bool
	}{
		{"standard", 80, 24, true},
		{"narrow", 50, 24, false},
		{"short", 80, 6, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := ComputeLayout(tc.w, tc.h)
			if l.Title.Y != 0 || l.Input.Y != tc.h-1 {
				t.Errorf("title/input rows = %d/%d", l.Title.Y, l.Input.Y)
			}
			if got := l.Chapters.W > 0; got != tc.wantChapters {
				t.Errorf("chapter pane present = %v, want %v", got, tc.wantChapters)
			}
			if l.Messages.Y+l.Messages.H != l.Input.Y {
				t.Errorf("messages end at %d, input at %d", l.Messages.Y+l.Messages.H, l.Input.Y)
			}
			if l.Story.H < 0 || l.Messages.H < 0 {
				t.Errorf("negative pane: %+v", l)
			}
		})
	}
	if l := ComputeLayout(0, 0); !l.Title.Empty() {
		t.Errorf("zero screen layout = %+v", l)
	}
}

func TestWrap(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  []string
	}{
		{"one two three", 7, []string{"one two", "three"}},
		{"   ", 10, nil},
		{"abc", 0, nil},
		{"supercalifragilistic word", 5, []string{"supercalifragilistic", "word"}},
	}
	for _, tc := range cases {
		got := wrap(tc.text, tc.width)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Errorf("wrap(%q, %d) = %q, want %q", tc.text, tc.width, got, tc.want)
		}
	}
}

func TestSimScreenKeepsRequestedSize(t *testing.T) {
	ss := newSimScreen(t, 100, 30)
	if w, h := ss.Size(); w != 100 || h != 30 {
		t.Fatalf("screen is %dx%d, want 100x30", w, h)
	}
}

// ─── frames ───────────────────────────────────────────────────────────────────

func TestDrawFrameShowsHUD(t *testing.T) {
	ss := newSimScreen(t, 100, 30)
	st := newTestState(t)
	st.BoostEnergy(42)
	field := particle.New(ss, particle.Config{PoolSize: 20}, rng.New(1))

	r := NewRenderer(ss)
	r.DrawFrame(st, field, View{})

	top := rowText(ss, 0)
	if !strings.Contains(top, "PUMPALIEN") || !strings.Contains(top, "ENERGY") || !strings.Contains(top, "MEDIUM") {
		t.Errorf("title row = %q", top)
	}
	all := screenText(ss)
	for _, want := range []string{"The Missing Alon", "Cosmic Kidnapping", "Greetings, earthling", "q quit"} {
		if !strings.Contains(all, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestDrawFrameLockedChapterHint(t *testing.T) {
	ss := newSimScreen(t, 100, 30)
	st := newTestState(t)
	st.SelectChapter(1)
	NewRenderer(ss).DrawFrame(st, nil, View{})
	if all := screenText(ss); !strings.Contains(all, "needs: contact, scan, analyze, transmit") {
		t.Errorf("locked hint missing:\n%s", all)
	}
}

func TestDrawFrameConsoleAndPrompt(t *testing.T) {
	ss := newSimScreen(t, 100, 30)
	st := newTestState(t)
	st.ExecuteCommand("help")
	NewRenderer(ss).DrawFrame(st, nil, View{Prompt: "> ", Input: []rune("sta"), ShowConsole: true})
	all := screenText(ss)
	if !strings.Contains(all, "Available Commands:") {
		t.Errorf("console output missing:\n%s", all)
	}
	_, h := ss.Size()
	if last := rowText(ss, h-1); !strings.HasPrefix(last, "> sta_") {
		t.Errorf("prompt row = %q", last)
	}
}

func TestDrawFrameRevelation(t *testing.T) {
	ss := newSimScreen(t, 100, 30)
	st := newTestState(t)
	st.BoostEnergy(100)
	r := NewRenderer(ss)
	r.DrawFrame(st, nil, View{})
	if all := screenText(ss); !strings.Contains(all, "(1/3)") {
		t.Errorf("first revelation missing:\n%s", all)
	}
	st.Advance(10 * time.Second)
	r.DrawFrame(st, nil, View{})
	if all := screenText(ss); !strings.Contains(all, "FINAL TRUTH") {
		t.Errorf("final truth missing:\n%s", all)
	}
}

func TestDrawFrameTinyScreen(t *testing.T) {
	ss := newSimScreen(t, 3, 2)
	st := newTestState(t)
	NewRenderer(ss).DrawFrame(st, nil, View{})
}

func TestChapterColorLockedIsDimmer(t *testing.T) {
	lr, lg, lb := chapterColor("#00ff88", false).RGB()
	ur, ug, ub := chapterColor("#00ff88", true).RGB()
	if lr+lg+lb >= ur+ug+ub && lg >= ug {
		t.Errorf("locked color %d,%d,%d not dimmer than %d,%d,%d", lr, lg, lb, ur, ug, ub)
	}
	if chapterColor("not-a-color", true) != colorAccent {
		t.Error("bad hex should fall back to the accent color")
	}
}
