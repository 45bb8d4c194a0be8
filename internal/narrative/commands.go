package narrative

import (
	"strings"
	"time"

	"pumpalien/internal/chat"
)

// RecordInteraction credits actionID toward chapterID's checklist and returns
// the chapter's progress and unlock state. Repeats and unknown ids change
// nothing.
func (s *State) RecordInteraction(chapterID, actionID string) (progress float64, unlocked bool) {
	if s.closed {
		return s.ChapterProgress(chapterID), s.tracker.Unlocked(chapterID)
	}
	progress, now := s.tracker.Record(chapterID, actionID)
	if now {
		s.unlocked(s.story.Chapters[s.chapterIndex(chapterID)].Title)
	}
	return progress, s.tracker.Unlocked(chapterID)
}

// Interact performs a micro-interaction: its effect runs every time, and it is
// recorded against every chapter that lists it. It returns the ids of
// chapters the call unlocked.
func (s *State) Interact(actionID string) []string {
	if s.closed {
		return nil
	}
	s.effects.Dispatch(actionID)
	var opened []string
	for _, c := range s.story.Chapters {
		was := s.tracker.Unlocked(c.ID)
		if _, now := s.RecordInteraction(c.ID, actionID); now && !was {
			opened = append(opened, c.ID)
		}
	}
	return opened
}

// BoostEnergy adds amount to the energy level and returns the new level.
// Regeneration resumes if the level dropped below full.
func (s *State) BoostEnergy(amount float64) float64 {
	if s.closed {
		return s.energy.Level()
	}
	level := s.energy.Boost(amount)
	s.startRegen()
	return level
}

// AdvanceChapter selects the next chapter, stopping at the last one.
func (s *State) AdvanceChapter() int {
	s.chapter = s.clampChapter(s.chapter + 1)
	return s.chapter
}

// RetreatChapter selects the previous chapter, stopping at the first one.
func (s *State) RetreatChapter() int {
	s.chapter = s.clampChapter(s.chapter - 1)
	return s.chapter
}

// SelectChapter jumps to chapter i, clamped into range.
func (s *State) SelectChapter(i int) int {
	s.chapter = s.clampChapter(i)
	return s.chapter
}

// NextToken selects the next listing on the market board, wrapping at the end.
func (s *State) NextToken() int {
	if s.closed {
		return s.market.SelectedIndex()
	}
	return s.market.SelectNext()
}

// SendHumanMessage appends the player's text and schedules one simulated
// reply. Blank input is ignored.
func (s *State) SendHumanMessage(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || s.closed {
		return false
	}
	s.messages.Append(text, chat.SenderHuman)
	s.messages.SimulateReply(s.clock, s.src, s.cfg.ReplyMin, s.cfg.ReplyMax, s.story.Replies)
	return true
}

// DispatchEffect runs a registered effect by name. Unknown names are ignored.
func (s *State) DispatchEffect(name string) bool {
	if s.closed {
		return false
	}
	return s.effects.Dispatch(name)
}

// Advance moves the session clock forward, running every timer that falls due.
func (s *State) Advance(dt time.Duration) {
	if s.closed {
		return
	}
	s.clock.Advance(dt)
}

// ResetSession returns everything except the particle field to its initial
// state, the market board included. Pending timers are cancelled, so no stale
// reply or revelation can land after the reset.
func (s *State) ResetSession() {
	if s.closed {
		return
	}
	s.clock.CancelAll()
	s.energy.Reset()
	s.tracker.Reset()
	s.chapter = 0
	s.truthRevealed = false
	s.revelation = -1
	s.finalShown = false
	s.classified = false
	s.messages.Reset()
	s.terminal.Reset()
	s.market.Reset()
	s.greet()
	s.startRegen()
	s.startMarket()
	s.logger.Debug("session reset")
}

// Close cancels every pending timer. The session ignores commands afterwards.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.clock.CancelAll()
	s.closed = true
}
