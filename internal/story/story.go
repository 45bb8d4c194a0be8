// Package story loads and validates the static narrative content: chapters,
// revelations and canned replies. The built-in story lives in assets; a YAML
// file can replace it.
package story

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"pumpalien/assets"
	"pumpalien/internal/tracker"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid story")

// Default returns a copy of the built-in story.
func Default() assets.StoryDef {
	return Clone(assets.PumpAlien)
}

// Load reads a YAML story from path. An empty path returns Default.
func Load(path string) (assets.StoryDef, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return assets.StoryDef{}, fmt.Errorf("read story: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return assets.StoryDef{}, fmt.Errorf("story %s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a YAML story. Fields left empty fall back to
// the built-in replies, greeting and token board.
func Parse(data []byte) (assets.StoryDef, error) {
	var def assets.StoryDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return assets.StoryDef{}, fmt.Errorf("decode story: %w", err)
	}
	if def.Greeting == "" {
		def.Greeting = assets.PumpAlien.Greeting
	}
	if len(def.Replies) == 0 {
		def.Replies = append([]string(nil), assets.PumpAlien.Replies...)
	}
	if len(def.Tokens) == 0 {
		def.Tokens = append([]assets.TokenDef(nil), assets.PumpAlien.Tokens...)
	}
	if err := Validate(def); err != nil {
		return assets.StoryDef{}, err
	}
	return def, nil
}

// Validate checks the invariants the engine relies on: at least one chapter,
// unique non-empty ids, and every chapter gated by exactly one mechanism.
func Validate(def assets.StoryDef) error {
	if len(def.Chapters) == 0 {
		return fmt.Errorf("%w: no chapters", ErrInvalid)
	}
	seen := make(map[string]bool, len(def.Chapters))
	for i, c := range def.Chapters {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("%w: chapter %d has no id", ErrInvalid, i)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: duplicate chapter id %q", ErrInvalid, c.ID)
		}
		seen[c.ID] = true

		switch {
		case len(c.Requires) > 0 && c.UnlockAt != 0:
			return fmt.Errorf("%w: chapter %q has both requires and unlock_at", ErrInvalid, c.ID)
		case len(c.Requires) == 0 && (c.UnlockAt <= 0 || c.UnlockAt > 100):
			return fmt.Errorf("%w: chapter %q needs requires or unlock_at in (0,100]", ErrInvalid, c.ID)
		}
		actions := make(map[string]bool, len(c.Requires))
		for _, a := range c.Requires {
			if strings.TrimSpace(a) == "" {
				return fmt.Errorf("%w: chapter %q has an empty action", ErrInvalid, c.ID)
			}
			if actions[a] {
				return fmt.Errorf("%w: chapter %q lists %q twice", ErrInvalid, c.ID, a)
			}
			actions[a] = true
		}
	}
	for i, r := range def.Revelations {
		if strings.TrimSpace(r.Title) == "" {
			return fmt.Errorf("%w: revelation %d has no title", ErrInvalid, i)
		}
	}
	for i, t := range def.Tokens {
		if strings.TrimSpace(t.Symbol) == "" {
			return fmt.Errorf("%w: token %d has no symbol", ErrInvalid, i)
		}
		if t.Price <= 0 || t.Volume < 0 {
			return fmt.Errorf("%w: token %q needs a positive price and volume", ErrInvalid, t.Symbol)
		}
	}
	return nil
}

// TrackerSpecs extracts the interaction checklists for the tracker.
func TrackerSpecs(def assets.StoryDef) []tracker.Spec {
	specs := make([]tracker.Spec, len(def.Chapters))
	for i, c := range def.Chapters {
		specs[i] = tracker.Spec{ID: c.ID, Requires: append([]string(nil), c.Requires...)}
	}
	return specs
}

// Actions returns every distinct action id used by any chapter, in order of
// first appearance.
func Actions(def assets.StoryDef) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range def.Chapters {
		for _, a := range c.Requires {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out
}

// Clone deep-copies def so sessions never share slices.
func Clone(def assets.StoryDef) assets.StoryDef {
	out := def
	out.Chapters = make([]assets.ChapterDef, len(def.Chapters))
	for i, c := range def.Chapters {
		c.Requires = append([]string(nil), c.Requires...)
		out.Chapters[i] = c
	}
	out.Revelations = append([]assets.RevelationDef(nil), def.Revelations...)
	out.Replies = append([]string(nil), def.Replies...)
	out.Tokens = append([]assets.TokenDef(nil), def.Tokens...)
	return out
}
