package narrative

import (
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"pumpalien/assets"
)

func terminal(s *State) []string { return texts(s.TerminalLines()) }

func TestExecuteCommandHelp(t *testing.T) {
	s, _ := newTestState(t)
	if !s.ExecuteCommand("  HELP ") {
		t.Fatal("help rejected")
	}
	lines := terminal(s)
	if lines[0] != "> HELP" {
		t.Errorf("echo = %q", lines[0])
	}
	if !slices.Equal(lines[1:], assets.ConsoleHelp) {
		t.Errorf("help output = %v", lines[1:])
	}
}

func TestExecuteCommandUnknownAndBlank(t *testing.T) {
	s, _ := newTestState(t)
	if s.ExecuteCommand("   ") {
		t.Error("blank input accepted")
	}
	if len(s.TerminalLines()) != 0 {
		t.Error("blank input echoed")
	}
	if s.ExecuteCommand("rm -rf") {
		t.Error("unknown command reported success")
	}
	lines := terminal(s)
	if want := fmt.Sprintf(assets.CommandNotFound, "rm -rf"); lines[len(lines)-1] != want {
		t.Errorf("last line = %q, want %q", lines[len(lines)-1], want)
	}
}

func TestExecuteCommandClear(t *testing.T) {
	s, _ := newTestState(t)
	s.ExecuteCommand("help")
	s.ExecuteCommand("clear")
	if got := terminal(s); !slices.Equal(got, []string{assets.TerminalCleared}) {
		t.Errorf("after clear = %v", got)
	}
}

func TestExecuteCommandStatus(t *testing.T) {
	s, _ := newTestState(t)
	s.BoostEnergy(12)
	s.ExecuteCommand("status")
	out := strings.Join(terminal(s), "\n")
	for _, want := range []string{"System Status:", "Energy: 12.0% (low)", "Chapters Unlocked: 1/5", "Classified Mode: Inactive", "Market Tokens: 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("status missing %q:\n%s", want, out)
		}
	}
}

func TestExecuteCommandMarket(t *testing.T) {
	s, _ := newTestState(t)
	s.NextToken()
	if !s.ExecuteCommand("market") {
		t.Fatal("market rejected")
	}
	lines := terminal(s)
	if lines[1] != "Token Market:" || len(lines) != 2+len(assets.PumpAlien.Tokens)+1 {
		t.Fatalf("lines = %v", lines)
	}
	for i, def := range assets.PumpAlien.Tokens {
		row := lines[2+i]
		if !strings.Contains(row, def.Symbol) {
			t.Errorf("row %d = %q, want %s", i, row, def.Symbol)
		}
		if marked := strings.HasPrefix(row, "▶"); marked != (i == 1) {
			t.Errorf("row %d marked = %v", i, marked)
		}
	}
	if last := lines[len(lines)-1]; !strings.Contains(last, "Appetite: 148") {
		t.Errorf("totals = %q", last)
	}
}

func TestExecuteCommandClassifiedToggles(t *testing.T) {
	s, _ := newTestState(t)
	s.ExecuteCommand("classified")
	if !s.Classified() {
		t.Fatal("classified mode not enabled")
	}
	s.ExecuteCommand("classified")
	if s.Classified() {
		t.Fatal("classified mode not disabled")
	}
	lines := terminal(s)
	if count(lines, assets.ClassifiedOn) != 1 || count(lines, assets.ClassifiedOff) != 1 {
		t.Errorf("lines = %v", lines)
	}
}

func TestExecuteCommandScanIsStaged(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		t.Run(fmt.Sprint(seed), func(t *testing.T) {
			s, _ := newSeededState(t, seed)
			s.ExecuteCommand("scan")
			if got := terminal(s); got[len(got)-1] != assets.ScanStart {
				t.Fatalf("lines = %v", got)
			}
			s.Advance(2999 * time.Millisecond)
			if got := terminal(s); got[len(got)-1] != assets.ScanStart {
				t.Fatalf("scan finished early: %v", got)
			}
			s.Advance(time.Millisecond)
			lines := terminal(s)
			last := lines[len(lines)-1]
			if last == assets.ScanNone {
				return
			}
			if last != assets.ScanAnalyzing {
				t.Fatalf("unexpected scan result: %v", lines)
			}
			s.Advance(2 * time.Second)
			if got := terminal(s); got[len(got)-1] != assets.ScanPattern {
				t.Errorf("follow-up missing: %v", got)
			}
		})
	}
}

func TestExecuteCommandAnalyzeSteps(t *testing.T) {
	s, _ := newTestState(t)
	s.ExecuteCommand("analyze")
	for i, step := range assets.AnalysisSteps {
		s.Advance(time.Second)
		lines := terminal(s)
		if lines[len(lines)-1] != step {
			t.Fatalf("after %ds last line = %q, want %q", i+1, lines[len(lines)-1], step)
		}
	}
	s.Advance(time.Second)
	lines := terminal(s)
	if lines[len(lines)-1] != assets.AnalysisResult {
		t.Errorf("result = %q", lines[len(lines)-1])
	}
	if lines[1] != assets.AnalysisStart {
		t.Errorf("start line = %q", lines[1])
	}
}

func TestResetCancelsConsoleTimers(t *testing.T) {
	s, _ := newTestState(t)
	s.ExecuteCommand("scan")
	s.ExecuteCommand("analyze")
	s.ResetSession()
	s.Advance(10 * time.Second)
	if got := terminal(s); len(got) != 0 {
		t.Errorf("stale console output after reset: %v", got)
	}
}
