package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadWithoutOverrides(t *testing.T) {
	cfg, err := Load(map[string]string{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load({}) = %+v, want defaults", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(map[string]string{
		"PUMPALIEN_POOL_SIZE":      "12",
		"PUMPALIEN_REGEN_INTERVAL": "250ms",
		"PUMPALIEN_BOOST_AMOUNT":   "35",
		"PUMPALIEN_STORY_FILE":     "story.yaml",
		"PUMPALIEN_SEED":           "42",
		"PUMPALIEN_LOG_LEVEL":      "debug",
		"PUMPALIEN_SESSION_LOG":    "false",
		"PUMPALIEN_LOG_FILE":       "/tmp/pumpalien.log",
		"POOL_SIZE":                "999",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PoolSize != 12 {
		t.Errorf("PoolSize = %d, want 12", cfg.PoolSize)
	}
	if cfg.RegenInterval != 250*time.Millisecond {
		t.Errorf("RegenInterval = %s", cfg.RegenInterval)
	}
	if cfg.BoostAmount != 35 || cfg.StoryFile != "story.yaml" || cfg.Seed != 42 || cfg.SessionLog || cfg.LogFile != "/tmp/pumpalien.log" {
		t.Errorf("cfg = %+v", cfg)
	}
	if lvl, _ := cfg.SlogLevel(); lvl != slog.LevelDebug {
		t.Errorf("SlogLevel = %v, want debug", lvl)
	}
	if cfg.FieldWidth != 800 {
		t.Errorf("unset FieldWidth changed to %g", cfg.FieldWidth)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		environ map[string]string
		want    string
	}{
		{"not an int", map[string]string{"PUMPALIEN_POOL_SIZE": "lots"}, "parse env:"},
		{"bad duration", map[string]string{"PUMPALIEN_REPLY_MAX": "soon"}, "parse env:"},
		{"zero pool", map[string]string{"PUMPALIEN_POOL_SIZE": "0"}, "pool size"},
		{"inverted reply range", map[string]string{"PUMPALIEN_REPLY_MIN": "5s"}, "reply delay"},
		{"zero market interval", map[string]string{"PUMPALIEN_MARKET_INTERVAL": "0s"}, "intervals"},
		{"warning above max", map[string]string{"PUMPALIEN_WARNING_THRESHOLD": "120"}, "warning threshold"},
		{"unknown level", map[string]string{"PUMPALIEN_LOG_LEVEL": "loud"}, "log level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.environ)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadReadsProcessEnv(t *testing.T) {
	t.Setenv("PUMPALIEN_LOG_CAPACITY", "4")
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogCapacity != 4 {
		t.Errorf("LogCapacity = %d, want 4", cfg.LogCapacity)
	}
}
