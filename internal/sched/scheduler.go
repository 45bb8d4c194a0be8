// Package sched is the cooperative timer queue of a session. It owns a
// virtual clock that only moves when the owning loop calls Advance, so every
// delayed callback (regeneration, simulated replies, staged console output,
// revelation auto-advance) runs on the loop goroutine in fire-time order.
//
// A Scheduler is not safe for concurrent use.
package sched

import (
	"container/heap"
	"time"
)

// Token identifies a scheduled task (or a staged chain of tasks) so that it
// can be cancelled. The zero Token refers to nothing.
type Token struct{ id uint64 }

// Valid reports whether the token was issued by a scheduler.
func (t Token) Valid() bool { return t.id != 0 }

type task struct {
	id        uint64
	at        time.Duration
	seq       uint64
	interval  time.Duration // 0 for one-shot tasks
	fn        func() bool   // return false to stop repeating
	index     int           // heap index; -1 once popped
	cancelled bool
}

// Scheduler runs callbacks at virtual times.
type Scheduler struct {
	start  time.Time
	now    time.Duration
	seq    uint64
	nextID uint64
	queue  taskQueue
	live   map[uint64]*task
}

// New creates a Scheduler whose clock reads start at elapsed zero.
func New(start time.Time) *Scheduler {
	return &Scheduler{
		start: start,
		live:  make(map[uint64]*task),
	}
}

// Now returns the current virtual wall time.
func (s *Scheduler) Now() time.Time { return s.start.Add(s.now) }

// Elapsed returns the virtual time since the scheduler was created.
func (s *Scheduler) Elapsed() time.Duration { return s.now }

// Pending returns the number of live tasks. A staged sequence counts once.
func (s *Scheduler) Pending() int { return len(s.live) }

// Active reports whether the task behind tok is still scheduled.
func (s *Scheduler) Active(tok Token) bool {
	_, ok := s.live[tok.id]
	return ok
}

// After runs fn once, delay from now.
func (s *Scheduler) After(delay time.Duration, fn func()) Token {
	if fn == nil {
		return Token{}
	}
	return s.push(delay, 0, func() bool {
		fn()
		return false
	})
}

// Every runs fn every interval until fn returns false or the token is
// cancelled. The first run happens one interval from now.
func (s *Scheduler) Every(interval time.Duration, fn func() bool) Token {
	if fn == nil || interval <= 0 {
		return Token{}
	}
	return s.push(interval, interval, fn)
}

// Sequence runs stages one after another, step apart, starting one step
// from now. All stages share the returned token.
func (s *Scheduler) Sequence(step time.Duration, stages ...func()) Token {
	if len(stages) == 0 || step <= 0 {
		return Token{}
	}
	next := 0
	return s.push(step, step, func() bool {
		stages[next]()
		next++
		return next < len(stages)
	})
}

// Cancel stops the task behind tok. Cancelling twice, or cancelling a task
// that already ran, is a no-op.
func (s *Scheduler) Cancel(tok Token) {
	t, ok := s.live[tok.id]
	if !ok {
		return
	}
	delete(s.live, tok.id)
	t.cancelled = true
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
}

// CancelAll drops every pending task.
func (s *Scheduler) CancelAll() {
	for id, t := range s.live {
		t.cancelled = true
		delete(s.live, id)
	}
	s.queue = s.queue[:0]
}

// Advance moves the clock forward by d and runs every task that falls due,
// earliest first. Tasks sharing a fire time run in scheduling order.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	for len(s.queue) > 0 && s.queue[0].at <= target {
		t := heap.Pop(&s.queue).(*task)
		s.now = t.at
		keep := t.fn()
		if t.cancelled {
			continue
		}
		if keep && t.interval > 0 {
			t.at += t.interval
			s.seq++
			t.seq = s.seq
			heap.Push(&s.queue, t)
			continue
		}
		delete(s.live, t.id)
	}
	s.now = target
}

func (s *Scheduler) push(delay, interval time.Duration, fn func() bool) Token {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.seq++
	t := &task{
		id:       s.nextID,
		at:       s.now + delay,
		seq:      s.seq,
		interval: interval,
		fn:       fn,
	}
	heap.Push(&s.queue, t)
	s.live[t.id] = t
	return Token{id: t.id}
}

// taskQueue is a min-heap ordered by (at, seq).
type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
