package chat

import (
	"fmt"
	"testing"
	"time"

	"pumpalien/internal/rng"
	"pumpalien/internal/sched"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAppendEvictsOldestFirst(t *testing.T) {
	l := New(10, func() time.Time { return epoch })
	for i := range 11 {
		l.Append(fmt.Sprintf("m%d", i), SenderHuman)
	}
	got := l.Recent()
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	if got[0].Text != "m1" {
		t.Errorf("oldest = %q, want m1 (m0 evicted)", got[0].Text)
	}
	for i, m := range got {
		if want := fmt.Sprintf("m%d", i+1); m.Text != want {
			t.Errorf("got[%d] = %q, want %q", i, m.Text, want)
		}
	}
}

func TestNeverExceedsCapacity(t *testing.T) {
	l := New(3, nil)
	for i := range 50 {
		l.Append("x", SenderSystem)
		if l.Len() > 3 {
			t.Fatalf("after %d appends len = %d", i+1, l.Len())
		}
	}
}

func TestAppendStampsIDAndTime(t *testing.T) {
	now := epoch
	l := New(5, func() time.Time { return now })
	a := l.Append("hello", SenderHuman)
	now = now.Add(time.Second)
	b := l.Append("hi", SenderSystem)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids should be unique and non-empty: %q %q", a.ID, b.ID)
	}
	if !a.At.Equal(epoch) || !b.At.Equal(epoch.Add(time.Second)) {
		t.Errorf("timestamps = %v, %v", a.At, b.At)
	}
	if last, ok := l.Last(); !ok || last.Text != "hi" {
		t.Errorf("Last = %+v, %v", last, ok)
	}
}

func TestRecentIsACopy(t *testing.T) {
	l := New(5, nil)
	l.Append("a", SenderHuman)
	r := l.Recent()
	r[0].Text = "mutated"
	if l.Recent()[0].Text != "a" {
		t.Error("Recent exposed internal storage")
	}
}

func TestSimulateReplySchedulesOne(t *testing.T) {
	s := sched.New(epoch)
	l := New(10, s.Now)
	src := rng.New(42)
	replies := []string{"r1", "r2"}

	tok := l.SimulateReply(s, src, time.Second, 3*time.Second, replies)
	if !tok.Valid() || s.Pending() != 1 {
		t.Fatalf("expected one pending reply, got %d", s.Pending())
	}
	s.Advance(999 * time.Millisecond)
	if l.Len() != 0 {
		t.Fatal("reply arrived before the minimum delay")
	}
	s.Advance(3 * time.Second)
	if l.Len() != 1 {
		t.Fatalf("len = %d, want exactly one reply", l.Len())
	}
	m, _ := l.Last()
	if m.Sender != SenderSystem || (m.Text != "r1" && m.Text != "r2") {
		t.Errorf("reply = %+v", m)
	}
}

func TestIndependentRepliesEachArrive(t *testing.T) {
	s := sched.New(epoch)
	l := New(10, s.Now)
	src := rng.New(7)
	l.SimulateReply(s, src, time.Second, 3*time.Second, []string{"a"})
	l.SimulateReply(s, src, time.Second, 3*time.Second, []string{"b"})
	s.Advance(5 * time.Second)
	if l.Len() != 2 {
		t.Errorf("len = %d, want 2", l.Len())
	}
}

func TestCancelledReplyNeverArrives(t *testing.T) {
	s := sched.New(epoch)
	l := New(10, s.Now)
	tok := l.SimulateReply(s, rng.New(1), time.Second, time.Second, []string{"late"})
	s.Cancel(tok)
	s.Advance(time.Minute)
	if l.Len() != 0 {
		t.Error("cancelled reply was appended")
	}
}

func TestSimulateReplyWithoutRepliesIsNoop(t *testing.T) {
	s := sched.New(epoch)
	l := New(10, s.Now)
	if l.SimulateReply(s, rng.New(1), time.Second, 2*time.Second, nil).Valid() {
		t.Error("expected zero token")
	}
	if s.Pending() != 0 {
		t.Error("nothing should be scheduled")
	}
}

func TestReset(t *testing.T) {
	l := New(4, nil)
	l.Append("a", SenderHuman)
	l.Reset()
	if l.Len() != 0 {
		t.Errorf("len = %d after reset", l.Len())
	}
	if _, ok := l.Last(); ok {
		t.Error("Last should report empty")
	}
}
