// pumpalien-server serves the PumpAlien terminal over SSH. Every connection
// gets its own independent session. Build:
//
//	go build -o pumpalien-server ./cmd/server
//
// Usage:
//
//	./pumpalien-server [--port 2222] [--key server_host_key] [--max-sessions 32]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
//
// Tunables are read from PUMPALIEN_* environment variables, as for the local
// binary.
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"pumpalien/assets"
	"pumpalien/internal/config"
	"pumpalien/internal/game"
	internalssh "pumpalien/internal/ssh"
	"pumpalien/internal/story"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	xssh "golang.org/x/crypto/ssh"
)

// maxNameBytes bounds the user name written to the log.
const maxNameBytes = 16

// allowedTerms lists the TERM values the server will hand to terminfo.
// Anything else falls back to xterm-256color.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

const defaultTerm = "xterm-256color"

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	maxSessions := flag.Int("max-sessions", 32, "Maximum concurrent sessions")
	flag.Parse()

	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	def, err := story.Load(cfg.StoryFile)
	if err != nil {
		logger.Error("load story", "error", err)
		os.Exit(1)
	}
	signer, err := loadOrCreateHostKey(*keyFile, logger)
	if err != nil {
		logger.Error("host key", "error", err)
		os.Exit(1)
	}

	h := &handler{
		cfg:    cfg,
		story:  def,
		logger: logger,
		slots:  make(chan struct{}, *maxSessions),
	}
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: every visitor gets an anonymous session.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("pumpalien SSH server listening", "port", *port, "max_sessions", *maxSessions)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
}

// ─── sessions ───────────────────────────────────────────────────────────────

// handler runs one engine session per SSH connection.
type handler struct {
	cfg    config.Config
	story  assets.StoryDef
	logger *slog.Logger
	slots  chan struct{}
}

// handleSession blocks for the lifetime of the connection.
func (h *handler) handleSession(s gossh.Session) {
	logger := h.logger.With(
		"session", uuid.NewString(),
		"user", sanitizeName(s.User()),
		"remote", s.RemoteAddr().String(),
	)

	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "PumpAlien needs a terminal. Connect with: ssh -t -p <port> <host>")
		return
	}

	select {
	case h.slots <- struct{}{}:
		defer func() { <-h.slots }()
	default:
		fmt.Fprintln(s, "All channels are busy. Try again later.")
		logger.Warn("session rejected: server full")
		return
	}

	screen, err := newSessionScreen(s, pty, winCh)
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		logger.Warn("terminal setup failed", "error", err)
		return
	}

	g, err := game.NewWithScreen(screen, h.cfg, story.Clone(h.story), logger)
	if err != nil {
		screen.Fini()
		logger.Error("new session", "error", err)
		return
	}
	g.Run(s.Context())
}

// termMu serialises os.Setenv("TERM") around screen creation, since terminfo
// lookup reads the process environment.
var termMu sync.Mutex

func newSessionScreen(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) (tcell.Screen, error) {
	term := pty.Term
	for _, env := range s.Environ() {
		if v, ok := strings.CutPrefix(env, "TERM="); ok {
			term = v
			break
		}
	}
	if !allowedTerms[term] {
		term = defaultTerm
	}

	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}

// sanitizeName drops control characters and truncates to maxNameBytes
// without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == utf8.RuneError || unicode.IsControl(r) {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating new ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	pemBlock, err := xssh.MarshalPrivateKey(key, "pumpalien server")
	if err != nil {
		logger.Warn("marshal host key", "error", err)
		return signer, nil
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
		logger.Warn("persist host key", "error", err)
	}
	return signer, nil
}
