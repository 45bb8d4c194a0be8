// Package config holds the tunables of a session. Values start from Default
// and may be overridden by PUMPALIEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name below.
const EnvPrefix = "PUMPALIEN_"

// Config is read once at startup and shared read-only between sessions.
type Config struct {
	// Particle field.
	PoolSize    int     `env:"POOL_SIZE"`
	FieldWidth  float64 `env:"FIELD_WIDTH"`
	FieldHeight float64 `env:"FIELD_HEIGHT"`
	LinkRadius  float64 `env:"LINK_RADIUS"`

	// Energy.
	RegenRate        float64       `env:"REGEN_RATE"`
	RegenInterval    time.Duration `env:"REGEN_INTERVAL"`
	BoostAmount      float64       `env:"BOOST_AMOUNT"`
	WarningThreshold float64       `env:"WARNING_THRESHOLD"`

	// Messages and timers.
	LogCapacity    int           `env:"LOG_CAPACITY"`
	ReplyMin       time.Duration `env:"REPLY_MIN"`
	ReplyMax       time.Duration `env:"REPLY_MAX"`
	RevealInterval time.Duration `env:"REVEAL_INTERVAL"`
	MarketInterval time.Duration `env:"MARKET_INTERVAL"`
	FrameInterval  time.Duration `env:"FRAME_INTERVAL"`

	// Runtime.
	StoryFile  string `env:"STORY_FILE"`
	Seed       int64  `env:"SEED"`
	LogLevel   string `env:"LOG_LEVEL"`
	LogFile    string `env:"LOG_FILE"`    // local binary only; empty discards logs
	SessionLog bool   `env:"SESSION_LOG"` // append a summary of each session to sessions.jsonl
}

// Default returns the standard pacing.
func Default() Config {
	return Config{
		PoolSize:         80,
		FieldWidth:       800,
		FieldHeight:      600,
		LinkRadius:       120,
		RegenRate:        0.5,
		RegenInterval:    time.Second,
		BoostAmount:      20,
		WarningThreshold: 70,
		LogCapacity:      10,
		ReplyMin:         time.Second,
		ReplyMax:         3 * time.Second,
		RevealInterval:   3 * time.Second,
		MarketInterval:   5 * time.Second,
		FrameInterval:    33 * time.Millisecond,
		LogLevel:         "info",
		SessionLog:       true,
	}
}

// Load applies environment overrides on top of Default. A nil environ reads
// the process environment.
func Load(environ map[string]string) (Config, error) {
	cfg := Default()
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.PoolSize <= 0 {
		errs = append(errs, fmt.Errorf("pool size must be positive, got %d", c.PoolSize))
	}
	if c.FieldWidth <= 0 || c.FieldHeight <= 0 {
		errs = append(errs, fmt.Errorf("field bounds must be positive, got %gx%g", c.FieldWidth, c.FieldHeight))
	}
	if c.LinkRadius < 0 {
		errs = append(errs, fmt.Errorf("link radius must not be negative, got %g", c.LinkRadius))
	}
	if c.RegenRate <= 0 {
		errs = append(errs, fmt.Errorf("regen rate must be positive, got %g", c.RegenRate))
	}
	if c.RegenInterval <= 0 || c.RevealInterval <= 0 || c.MarketInterval <= 0 || c.FrameInterval <= 0 {
		errs = append(errs, errors.New("intervals must be positive"))
	}
	if c.WarningThreshold <= 0 || c.WarningThreshold > 100 {
		errs = append(errs, fmt.Errorf("warning threshold must be in (0,100], got %g", c.WarningThreshold))
	}
	if c.LogCapacity <= 0 {
		errs = append(errs, fmt.Errorf("log capacity must be positive, got %d", c.LogCapacity))
	}
	if c.ReplyMin < 0 || c.ReplyMax < c.ReplyMin {
		errs = append(errs, fmt.Errorf("reply delay range [%s,%s] is invalid", c.ReplyMin, c.ReplyMax))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
