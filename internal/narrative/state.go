// Package narrative is the composition root of a session. State owns the
// energy accumulator, the interaction tracker, the message logs, the token
// market, the effect dispatcher and the virtual clock, and exposes the queries and commands the
// view layer consumes. All methods must be called from one goroutine.
package narrative

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"pumpalien/assets"
	"pumpalien/internal/chat"
	"pumpalien/internal/config"
	"pumpalien/internal/effect"
	"pumpalien/internal/energy"
	"pumpalien/internal/market"
	"pumpalien/internal/rng"
	"pumpalien/internal/sched"
	"pumpalien/internal/story"
	"pumpalien/internal/tracker"
)

// Effects the view layer must register before the session starts.
const (
	EffectBurst = "burst"
	EffectChime = "chime"
)

// Effects registered by State itself.
const (
	EffectClassified = "classified"
	EffectRevelation = "revelation"
)

// terminalCapacity bounds the console scrollback.
const terminalCapacity = 50

// Chapter is a read-only view of one chapter.
type Chapter struct {
	assets.ChapterDef
	Index    int
	Unlocked bool
	Progress float64
}

// Revelation is the currently shown stage of the truth sequence.
type Revelation struct {
	assets.RevelationDef
	Index int
	Total int
}

// State is one player's session.
type State struct {
	cfg    config.Config
	story  assets.StoryDef
	logger *slog.Logger
	src    *rng.Source

	clock    *sched.Scheduler
	energy   *energy.Accumulator
	tracker  *tracker.Tracker
	messages *chat.Log
	terminal *chat.Log
	effects  *effect.Dispatcher
	market   *market.Market

	chapter       int
	truthRevealed bool
	revelation    int
	finalShown    bool
	classified    bool
	closed        bool

	regen  sched.Token
	reveal sched.Token
	drift  sched.Token
}

// New builds a session from validated configuration and story content. start
// anchors the virtual clock used for message timestamps.
func New(cfg config.Config, def assets.StoryDef, src *rng.Source, start time.Time, logger *slog.Logger) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("narrative: %w", err)
	}
	if err := story.Validate(def); err != nil {
		return nil, fmt.Errorf("narrative: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if src == nil {
		src = rng.New(cfg.Seed)
	}

	clock := sched.New(start)
	s := &State{
		cfg:        cfg,
		story:      def,
		logger:     logger,
		src:        src,
		clock:      clock,
		energy:     energy.New(cfg.RegenRate),
		tracker:    tracker.New(story.TrackerSpecs(def)),
		messages:   chat.New(cfg.LogCapacity, clock.Now),
		terminal:   chat.New(terminalCapacity, clock.Now),
		effects:    effect.New(logger),
		market:     market.New(def.Tokens, src.Child()),
		revelation: -1,
	}
	s.registerEffects()
	if err := s.effects.Require(story.Actions(def)...); err != nil {
		return nil, fmt.Errorf("narrative: story actions: %w", err)
	}
	s.watchThresholds()
	s.greet()
	s.startRegen()
	s.startMarket()
	return s, nil
}

// Effects exposes the dispatcher so the view layer can register its handlers.
func (s *State) Effects() *effect.Dispatcher { return s.effects }

// Validate checks that every effect the session dispatches has a handler,
// including every action the story's chapters require.
func (s *State) Validate() error {
	names := append(story.Actions(s.story), EffectBurst, EffectChime, EffectClassified, EffectRevelation)
	return s.effects.Require(names...)
}

// ─── queries ────────────────────────────────────────────────────────────────

// CurrentEnergyLevel returns the energy in [0, 100].
func (s *State) CurrentEnergyLevel() float64 { return s.energy.Level() }

// EnergyStatus returns the band of the current level.
func (s *State) EnergyStatus() energy.Status { return s.energy.Status() }

// EnergyHistory returns recent levels, oldest first.
func (s *State) EnergyHistory() []float64 { return s.energy.History() }

// IsChapterUnlocked reports whether the chapter is open. Unknown ids are locked.
func (s *State) IsChapterUnlocked(id string) bool { return s.tracker.Unlocked(id) }

// ChapterProgress returns how close the chapter is to unlocking, in [0, 100].
// Checklist chapters report interaction progress; energy-gated chapters
// report the level relative to their threshold.
func (s *State) ChapterProgress(id string) float64 {
	if s.tracker.Unlocked(id) {
		return tracker.Full
	}
	if s.tracker.Requires(id) {
		return s.tracker.Progress(id)
	}
	i := s.chapterIndex(id)
	if i < 0 {
		return 0
	}
	at := s.story.Chapters[i].UnlockAt
	return math.Min(tracker.Full, s.energy.Level()/at*tracker.Full)
}

// RecentMessages returns the conversation, oldest first.
func (s *State) RecentMessages() []chat.Message { return s.messages.Recent() }

// TerminalLines returns the console scrollback, oldest first.
func (s *State) TerminalLines() []chat.Message { return s.terminal.Recent() }

// CurrentChapterIndex returns the selected chapter ordinal.
func (s *State) CurrentChapterIndex() int { return s.chapter }

// ChapterCount returns the number of chapters.
func (s *State) ChapterCount() int { return len(s.story.Chapters) }

// Chapter returns the chapter at i, clamped into range.
func (s *State) Chapter(i int) Chapter {
	i = s.clampChapter(i)
	def := s.story.Chapters[i]
	return Chapter{
		ChapterDef: def,
		Index:      i,
		Unlocked:   s.tracker.Unlocked(def.ID),
		Progress:   s.ChapterProgress(def.ID),
	}
}

// CurrentChapter returns the selected chapter.
func (s *State) CurrentChapter() Chapter { return s.Chapter(s.chapter) }

// Chapters returns every chapter in order.
func (s *State) Chapters() []Chapter {
	out := make([]Chapter, len(s.story.Chapters))
	for i := range out {
		out[i] = s.Chapter(i)
	}
	return out
}

// IsTruthRevealed reports whether energy has reached full this session.
func (s *State) IsTruthRevealed() bool { return s.truthRevealed }

// CurrentRevelation returns the revelation on display, if any.
func (s *State) CurrentRevelation() (Revelation, bool) {
	if s.revelation < 0 || s.revelation >= len(s.story.Revelations) {
		return Revelation{}, false
	}
	return Revelation{
		RevelationDef: s.story.Revelations[s.revelation],
		Index:         s.revelation,
		Total:         len(s.story.Revelations),
	}, true
}

// FinalTruthShown reports whether the revelation sequence has finished.
func (s *State) FinalTruthShown() bool { return s.finalShown }

// FinalTruth returns the closing line of the revelation sequence.
func (s *State) FinalTruth() string { return s.story.FinalTruth }

// Classified reports whether classified mode is on.
func (s *State) Classified() bool { return s.classified }

// Tokens returns the market board in listing order.
func (s *State) Tokens() []market.Token { return s.market.Tokens() }

// SelectedToken returns the token the next trade will use.
func (s *State) SelectedToken() (market.Token, bool) { return s.market.Selected() }

// Story returns the title and subtitle of the loaded story.
func (s *State) Story() (title, subtitle string) { return s.story.Title, s.story.Subtitle }

// Now returns the session's virtual time.
func (s *State) Now() time.Time { return s.clock.Now() }

// Pending returns the number of scheduled tasks.
func (s *State) Pending() int { return s.clock.Pending() }

// ─── internals ──────────────────────────────────────────────────────────────

func (s *State) clampChapter(i int) int {
	return max(0, min(i, len(s.story.Chapters)-1))
}

func (s *State) chapterIndex(id string) int {
	return slices.IndexFunc(s.story.Chapters, func(c assets.ChapterDef) bool { return c.ID == id })
}

func (s *State) greet() {
	if s.story.Greeting != "" {
		s.messages.Append(s.story.Greeting, chat.SenderSystem)
	}
}

func (s *State) say(text string) { s.messages.Append(text, chat.SenderSystem) }

func (s *State) printLine(text string) { s.terminal.Append(text, chat.SenderSystem) }

func (s *State) startRegen() {
	if s.closed || s.clock.Active(s.regen) || s.energy.Full() {
		return
	}
	dt := s.cfg.RegenInterval.Seconds()
	s.regen = s.clock.Every(s.cfg.RegenInterval, func() bool {
		return s.energy.TickRegeneration(dt)
	})
}

// startMarket re-quotes the board every MarketInterval until the session is
// reset or closed.
func (s *State) startMarket() {
	if s.closed || s.clock.Active(s.drift) {
		return
	}
	s.drift = s.clock.Every(s.cfg.MarketInterval, func() bool {
		s.market.Drift()
		return true
	})
}

// watchThresholds wires every energy-driven transition. Registration order is
// firing order when one change crosses several thresholds.
func (s *State) watchThresholds() {
	for _, c := range s.story.Chapters {
		if c.UnlockAt <= 0 {
			continue
		}
		id, title := c.ID, c.Title
		s.energy.OnThresholdCrossed(c.UnlockAt, func(float64) {
			if s.tracker.Unlock(id) {
				s.unlocked(title)
			}
		})
	}

	goals := make([]float64, 0, len(assets.EnergyGoals))
	for at := range assets.EnergyGoals {
		goals = append(goals, at)
	}
	slices.Sort(goals)
	for _, at := range goals {
		line := assets.EnergyGoals[at]
		s.energy.OnThresholdCrossed(at, func(float64) { s.say(line) })
	}

	s.energy.OnThresholdCrossed(s.cfg.WarningThreshold, func(float64) { s.say(assets.EnergyWarning) })
	s.energy.OnThresholdCrossed(energy.Max, func(float64) { s.revealTruth() })
}

func (s *State) unlocked(title string) {
	s.say(fmt.Sprintf(assets.UnlockLine, title))
	s.effects.Dispatch(EffectChime)
	s.logger.Debug("chapter unlocked", "title", title, "energy", s.energy.Level())
}

// revealTruth flips the one-shot flag and starts the revelation sequence.
func (s *State) revealTruth() {
	if s.truthRevealed {
		return
	}
	s.truthRevealed = true
	s.say(assets.TruthRevealed)
	s.effects.Dispatch(EffectBurst)
	s.effects.Dispatch(EffectRevelation)
	if s.finalShown || s.closed {
		return
	}
	s.reveal = s.clock.Every(s.cfg.RevealInterval, func() bool {
		s.effects.Dispatch(EffectRevelation)
		return !s.finalShown
	})
}
