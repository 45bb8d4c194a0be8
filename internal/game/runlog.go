package game

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"pumpalien/internal/narrative"
)

// SessionLog summarises one session, from connect to quit.
type SessionLog struct {
	Timestamp        time.Time      `json:"timestamp"`
	Seed             int64          `json:"seed"`
	Duration         time.Duration  `json:"duration_ns"`
	Energy           float64        `json:"energy"`
	TruthRevealed    bool           `json:"truth_revealed"`
	FinalTruthShown  bool           `json:"final_truth_shown"`
	ChaptersUnlocked []string       `json:"chapters_unlocked"`
	Interactions     map[string]int `json:"interactions"`
	MessagesSent     int            `json:"messages_sent"`
	Commands         int            `json:"commands"`
	Resets           int            `json:"resets"`
}

func newSessionLog(start time.Time, seed int64) SessionLog {
	return SessionLog{
		Timestamp:    start,
		Seed:         seed,
		Interactions: make(map[string]int),
	}
}

// complete copies the final session state into the log.
func (l *SessionLog) complete(st *narrative.State, elapsed time.Duration) {
	l.Duration = elapsed
	l.Energy = st.CurrentEnergyLevel()
	l.TruthRevealed = st.IsTruthRevealed()
	l.FinalTruthShown = st.FinalTruthShown()
	l.ChaptersUnlocked = l.ChaptersUnlocked[:0]
	for _, c := range st.Chapters() {
		if c.Unlocked {
			l.ChaptersUnlocked = append(l.ChaptersUnlocked, c.ID)
		}
	}
}

// saveSessionLog appends the session as a single JSON line to sessions.jsonl.
// Errors are logged but never interrupt shutdown.
func saveSessionLog(sl SessionLog, logger *slog.Logger) {
	dir, err := sessionLogDir()
	if err != nil {
		logger.Warn("session log: cannot determine data dir", "error", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("session log: cannot create data dir", "error", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "sessions.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("session log: cannot open file", "error", err)
		return
	}
	defer f.Close()
	data, err := json.Marshal(sl)
	if err != nil {
		logger.Warn("session log: cannot marshal JSON", "error", err)
		return
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		logger.Warn("session log: write failed", "error", err)
	}
}

// sessionLogDir follows the XDG Base Directory spec: $XDG_DATA_HOME/pumpalien,
// defaulting to ~/.local/share/pumpalien.
func sessionLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "pumpalien"), nil
}
