// pumpalien runs the PumpAlien terminal in the local terminal.
//
// Tunables come from PUMPALIEN_* environment variables (see internal/config).
// Logs go to PUMPALIEN_LOG_FILE, or are discarded, since the screen owns the
// terminal while the session runs.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pumpalien/internal/config"
	"pumpalien/internal/game"
	"pumpalien/internal/story"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(nil)
	if err != nil {
		return err
	}
	def, err := story.Load(cfg.StoryFile)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := game.New(cfg, def, logger)
	if err != nil {
		return err
	}
	g.Run(ctx)
	return nil
}

// newLogger writes text logs to cfg.LogFile, or nowhere when it is empty.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	path := cfg.LogFile
	level, _ := cfg.SlogLevel()
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}
