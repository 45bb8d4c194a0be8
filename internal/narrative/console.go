package narrative

import (
	"fmt"
	"strings"
	"time"

	"pumpalien/assets"
	"pumpalien/internal/chat"
)

const (
	scanDelay    = 3 * time.Second
	scanFollowUp = 2 * time.Second
	analysisStep = time.Second
	maxSignals   = 4
)

// ExecuteCommand runs one console line. The input is echoed first; unknown
// commands print a hint and report false.
func (s *State) ExecuteCommand(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" || s.closed {
		return false
	}
	s.terminal.Append("> "+input, chat.SenderHuman)

	switch strings.ToLower(input) {
	case "help":
		for _, line := range assets.ConsoleHelp {
			s.printLine(line)
		}
	case "clear":
		s.terminal.Reset()
		s.printLine(assets.TerminalCleared)
	case "status":
		s.printStatus()
	case "scan":
		s.scanSignals()
	case "analyze":
		s.analyzeData()
	case "classified":
		s.effects.Dispatch(EffectClassified)
	case "market":
		s.printMarket()
	default:
		s.printLine(fmt.Sprintf(assets.CommandNotFound, input))
		return false
	}
	return true
}

func (s *State) printStatus() {
	unlocked := 0
	for _, c := range s.story.Chapters {
		if s.tracker.Unlocked(c.ID) {
			unlocked++
		}
	}
	mode, level := "Inactive", "Public"
	if s.classified {
		mode, level = "Active", "Classified"
	}
	cur := s.CurrentChapter()
	s.printLine("System Status:")
	s.printLine(fmt.Sprintf("  Energy: %.1f%% (%s)", s.energy.Level(), s.energy.Status()))
	s.printLine(fmt.Sprintf("  Current Chapter: %d/%d %s", cur.Index+1, len(s.story.Chapters), cur.Title))
	s.printLine(fmt.Sprintf("  Chapters Unlocked: %d/%d", unlocked, len(s.story.Chapters)))
	s.printLine("  Classified Mode: " + mode)
	s.printLine("  Security Level: " + level)
	s.printLine(fmt.Sprintf("  Market Tokens: %d", s.market.Len()))
	s.printLine("  All systems operational.")
}

// printMarket lists the board with the selected token marked.
func (s *State) printMarket() {
	if s.market.Len() == 0 {
		s.printLine(assets.MarketEmpty)
		return
	}
	s.printLine("Token Market:")
	sel := s.market.SelectedIndex()
	for i, t := range s.market.Tokens() {
		mark := " "
		if i == sel {
			mark = "▶"
		}
		s.printLine(fmt.Sprintf("%s %-7s $%.5f %+6.1f%% vol %.0f", mark, t.Symbol, t.Price, t.Change, t.Volume))
	}
	s.printLine(fmt.Sprintf("  Total Volume: %.0f  Appetite: %d", s.market.TotalVolume(), s.market.TotalEnergy()))
}

// scanSignals reports 0 to 4 signals after a delay, with a follow-up
// analysis line when anything was found.
func (s *State) scanSignals() {
	s.printLine(assets.ScanStart)
	s.clock.After(scanDelay, func() {
		n := s.src.Intn(maxSignals + 1)
		if n == 0 {
			s.printLine(assets.ScanNone)
			return
		}
		s.printLine(fmt.Sprintf(assets.ScanFound, n))
		s.printLine(assets.ScanAnalyzing)
		s.clock.After(scanFollowUp, func() { s.printLine(assets.ScanPattern) })
	})
}

// analyzeData prints one analysis step per second, then the result.
func (s *State) analyzeData() {
	s.printLine(assets.AnalysisStart)
	stages := make([]func(), 0, len(assets.AnalysisSteps)+1)
	for _, step := range assets.AnalysisSteps {
		stages = append(stages, func() { s.printLine(step) })
	}
	stages = append(stages, func() { s.printLine(assets.AnalysisResult) })
	s.clock.Sequence(analysisStep, stages...)
}
