package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pumpalien/assets"
	"pumpalien/internal/config"
	"pumpalien/internal/narrative"
	"pumpalien/internal/particle"
	"pumpalien/internal/render"
	"pumpalien/internal/rng"

	"github.com/gdamore/tcell/v2"
)

// Mode is the input state machine.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeTalk
	ModeConsole
)

// burstSize is the number of particles one burst effect recycles.
const burstSize = 12

// Game is one interactive session on one screen.
type Game struct {
	screen   tcell.Screen
	cfg      config.Config
	logger   *slog.Logger
	renderer *render.Renderer
	state    *narrative.State
	field    *particle.Field
	src      *rng.Source
	mode     Mode
	editor   lineEditor
	started  time.Time
	runLog   SessionLog
}

// New creates a Game on the local terminal.
func New(cfg config.Config, def assets.StoryDef, logger *slog.Logger) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	g, err := NewWithScreen(screen, cfg, def, logger)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a Game on an already initialised screen. The caller
// keeps ownership of screen until Run, which finalises it on return.
func NewWithScreen(screen tcell.Screen, cfg config.Config, def assets.StoryDef, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.Default()
	}
	src := rng.New(cfg.Seed)
	now := time.Now()
	st, err := narrative.New(cfg, def, src.Child(), now, logger)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	field := particle.New(screen, particle.Config{
		PoolSize:   cfg.PoolSize,
		Bounds:     particle.Bounds{W: cfg.FieldWidth, H: cfg.FieldHeight},
		LinkRadius: cfg.LinkRadius,
	}, src.Child())

	g := &Game{
		screen:   screen,
		cfg:      cfg,
		logger:   logger.With("seed", src.Seed()),
		renderer: render.NewRenderer(screen),
		state:    st,
		field:    field,
		src:      src,
		started:  now,
		runLog:   newSessionLog(now, src.Seed()),
	}
	st.Effects().MustRegister(narrative.EffectBurst, g.burst)
	st.Effects().MustRegister(narrative.EffectChime, g.chime)
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("effects: %w", err)
	}
	return g, nil
}

// State exposes the session for inspection.
func (g *Game) State() *narrative.State { return g.state }

// Mode returns the current input mode.
func (g *Game) Mode() Mode { return g.mode }

// Run drives the session until the player quits, the screen closes or ctx is
// cancelled. Input is read on a separate goroutine and forwarded over a
// channel; every state change happens on the calling goroutine.
func (g *Game) Run(ctx context.Context) {
	defer g.screen.Fini()
	defer g.finish()

	eventCh := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go g.pollEvents(eventCh, done)

	ticker := time.NewTicker(g.cfg.FrameInterval)
	defer ticker.Stop()
	last := time.Now()
	g.logger.Info("session started")
	g.Draw()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-eventCh:
			if !ok {
				return // screen closed / disconnected
			}
			if !g.HandleEvent(ev) {
				return
			}
			g.Draw()
		case now := <-ticker.C:
			g.Step(now.Sub(last))
			last = now
			g.Draw()
		}
	}
}

// pollEvents forwards screen events to eventCh until the screen closes or
// done is closed. It closes eventCh when the screen runs out of events.
func (g *Game) pollEvents(eventCh chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			close(eventCh)
			return
		}
		select {
		case eventCh <- ev:
		case <-done:
			return
		}
	}
}

// Step advances timers and the particle animation by dt.
func (g *Game) Step(dt time.Duration) {
	g.state.Advance(dt)
	g.field.Tick()
}

// Draw renders one frame.
func (g *Game) Draw() {
	g.renderer.DrawFrame(g.state, g.field, g.view())
}

// HandleEvent applies one input event. It returns false when the player quits.
func (g *Game) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventKey:
		switch g.mode {
		case ModeTalk, ModeConsole:
			g.handleTyping(ev)
		default:
			return g.processAction(keyToAction(ev))
		}
	}
	return true
}

// processAction handles one normal-mode action.
func (g *Game) processAction(action Action) bool {
	switch action {
	case ActionQuit:
		return false
	case ActionNextChapter:
		g.state.AdvanceChapter()
	case ActionPrevChapter:
		g.state.RetreatChapter()
	case ActionTalk:
		g.mode = ModeTalk
	case ActionConsole:
		g.mode = ModeConsole
	case ActionClassified:
		g.state.DispatchEffect(narrative.EffectClassified)
	case ActionReveal:
		g.state.DispatchEffect(narrative.EffectRevelation)
	case ActionReset:
		g.state.ResetSession()
		g.runLog.Resets++
	case ActionNextToken:
		g.state.NextToken()
	default:
		if id, ok := interactions[action]; ok {
			g.runLog.Interactions[id]++
			for _, ch := range g.state.Interact(id) {
				g.logger.Debug("chapter unlocked by interaction", "chapter", ch, "action", id)
			}
		}
	}
	return true
}

// handleTyping feeds a key to the line editor. Talk mode ends after each
// message; console mode stays open until Escape.
func (g *Game) handleTyping(ev *tcell.EventKey) {
	switch g.editor.handle(ev) {
	case editCancel:
		g.editor.take()
		g.mode = ModeNormal
	case editSubmit:
		line := g.editor.take()
		if g.mode == ModeTalk {
			if g.state.SendHumanMessage(line) {
				g.runLog.MessagesSent++
			}
			g.mode = ModeNormal
			return
		}
		if line != "" {
			g.state.ExecuteCommand(line)
			g.runLog.Commands++
		}
	}
}

func (g *Game) view() render.View {
	v := render.View{Input: g.editor.buf}
	switch g.mode {
	case ModeTalk:
		v.Prompt = "say> "
	case ModeConsole:
		v.Prompt = "$ "
		v.ShowConsole = true
	}
	return v
}

// burst recycles a handful of particles around a random point of the field.
func (g *Game) burst() {
	b := g.field.Bounds()
	g.field.Burst(g.src.Range(b.W*0.25, b.W*0.75), g.src.Range(b.H*0.25, b.H*0.75), burstSize)
}

func (g *Game) chime() {
	if err := g.screen.Beep(); err != nil {
		g.logger.Debug("beep failed", "error", err)
	}
}

// finish closes the session and records its summary.
func (g *Game) finish() {
	g.runLog.complete(g.state, time.Since(g.started))
	g.state.Close()
	g.logger.Info("session ended",
		"duration", g.runLog.Duration,
		"energy", g.runLog.Energy,
		"unlocked", len(g.runLog.ChaptersUnlocked),
	)
	if g.cfg.SessionLog {
		saveSessionLog(g.runLog, g.logger)
	}
}
