// Package chat holds the conversation shown beside the entity: a bounded,
// append-only log plus simulated replies that arrive after a random delay.
package chat

import (
	"time"

	"pumpalien/internal/rng"
	"pumpalien/internal/sched"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of messages kept on screen.
const DefaultCapacity = 10

// Sender identifies who wrote a message.
type Sender uint8

const (
	SenderHuman Sender = iota
	SenderSystem
)

func (s Sender) String() string {
	if s == SenderHuman {
		return "human"
	}
	return "system"
}

// Message is immutable once appended.
type Message struct {
	ID     string
	Text   string
	Sender Sender
	At     time.Time
}

// Log keeps the most recent messages, oldest first.
type Log struct {
	capacity int
	clock    func() time.Time
	messages []Message
}

// New creates a log holding at most capacity messages. clock stamps each
// entry; nil means time.Now.
func New(capacity int, clock func() time.Time) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if clock == nil {
		clock = time.Now
	}
	return &Log{capacity: capacity, clock: clock}
}

// Capacity returns the bound.
func (l *Log) Capacity() int { return l.capacity }

// Len returns the number of stored messages.
func (l *Log) Len() int { return len(l.messages) }

// Append stores a message and evicts from the front past capacity.
func (l *Log) Append(text string, sender Sender) Message {
	m := Message{
		ID:     uuid.NewString(),
		Text:   text,
		Sender: sender,
		At:     l.clock(),
	}
	l.messages = append(l.messages, m)
	if over := len(l.messages) - l.capacity; over > 0 {
		// Copy down so the backing array does not grow without bound.
		n := copy(l.messages, l.messages[over:])
		l.messages = l.messages[:n]
	}
	return m
}

// Recent returns a copy of the stored messages, oldest first.
func (l *Log) Recent() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Last returns the newest message, if any.
func (l *Log) Last() (Message, bool) {
	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}

// Reset empties the log.
func (l *Log) Reset() { l.messages = l.messages[:0] }

// SimulateReply schedules exactly one system reply, picked from replies, at a
// random delay in [minDelay, maxDelay]. Nothing is scheduled when replies is
// empty.
func (l *Log) SimulateReply(s *sched.Scheduler, src *rng.Source, minDelay, maxDelay time.Duration, replies []string) sched.Token {
	if len(replies) == 0 || s == nil || src == nil {
		return sched.Token{}
	}
	delay := src.Duration(minDelay, maxDelay)
	text := src.Pick(replies)
	return s.After(delay, func() { l.Append(text, SenderSystem) })
}
