// Package tracker keeps per-chapter interaction checklists and the
// locked/unlocked state of every chapter. Unlocking is one-way.
package tracker

// Full is the progress value at which a chapter unlocks.
const Full = 100.0

// Spec describes one chapter's checklist. An empty Requires list means the
// chapter is unlocked by something else (see Unlock).
type Spec struct {
	ID       string
	Requires []string
}

type chapter struct {
	required  map[string]bool // action id -> satisfied
	weight    float64
	progress  float64
	satisfied int
	unlocked  bool
}

// Tracker owns progress for a fixed set of chapters.
type Tracker struct {
	order    []string
	chapters map[string]*chapter
}

// New builds a tracker with every chapter locked and at zero progress.
// Duplicate action ids within a chapter count once.
func New(specs []Spec) *Tracker {
	t := &Tracker{chapters: make(map[string]*chapter, len(specs))}
	for _, s := range specs {
		if _, dup := t.chapters[s.ID]; dup {
			continue
		}
		c := &chapter{required: make(map[string]bool, len(s.Requires))}
		for _, a := range s.Requires {
			c.required[a] = false
		}
		if n := len(c.required); n > 0 {
			c.weight = Full / float64(n)
		}
		t.order = append(t.order, s.ID)
		t.chapters[s.ID] = c
	}
	return t
}

// Chapters returns the chapter ids in configuration order.
func (t *Tracker) Chapters() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Record applies actionID to chapterID. Unknown chapters, unknown actions and
// actions already satisfied leave everything unchanged. It returns the
// chapter's progress and whether this call unlocked it.
func (t *Tracker) Record(chapterID, actionID string) (progress float64, unlockedNow bool) {
	c, ok := t.chapters[chapterID]
	if !ok {
		return 0, false
	}
	done, known := c.required[actionID]
	if !known || done || c.unlocked {
		return c.progress, false
	}
	c.required[actionID] = true
	c.satisfied++
	c.progress += c.weight
	// Summing 100/n weights can land a hair under 100.
	if c.satisfied == len(c.required) {
		c.progress = Full
	}
	if c.progress >= Full {
		c.unlocked = true
		return c.progress, true
	}
	return c.progress, false
}

// Unlock marks a chapter unlocked regardless of its checklist. It reports
// whether the call changed anything.
func (t *Tracker) Unlock(chapterID string) bool {
	c, ok := t.chapters[chapterID]
	if !ok || c.unlocked {
		return false
	}
	c.unlocked = true
	return true
}

// Unlocked reports the chapter's state; unknown ids are locked.
func (t *Tracker) Unlocked(chapterID string) bool {
	c, ok := t.chapters[chapterID]
	return ok && c.unlocked
}

// Progress returns the checklist progress in [0, 100]. Unknown ids yield 0.
func (t *Tracker) Progress(chapterID string) float64 {
	if c, ok := t.chapters[chapterID]; ok {
		return c.progress
	}
	return 0
}

// Satisfied reports whether actionID has been recorded for chapterID.
func (t *Tracker) Satisfied(chapterID, actionID string) bool {
	c, ok := t.chapters[chapterID]
	return ok && c.required[actionID]
}

// Requires reports whether chapterID has a non-empty checklist.
func (t *Tracker) Requires(chapterID string) bool {
	c, ok := t.chapters[chapterID]
	return ok && len(c.required) > 0
}

// Reset relocks every chapter and clears all progress.
func (t *Tracker) Reset() {
	for _, c := range t.chapters {
		for a := range c.required {
			c.required[a] = false
		}
		c.progress = 0
		c.satisfied = 0
		c.unlocked = false
	}
}
