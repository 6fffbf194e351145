package memory

import "time"

// Timer is a pending delayed callback.
type Timer interface {
	// Stop cancels the callback. Returns false if it already fired or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay on the caller's goroutine.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
	Now() time.Duration
}

// TickScheduler is a virtual-time scheduler advanced explicitly by the
// platform tick loop (or by tests). Callbacks fire inside Advance, in
// deadline order; equal deadlines fire in the order they were scheduled.
type TickScheduler struct {
	now     time.Duration
	seq     uint64
	pending []*tickTimer
}

type tickTimer struct {
	s    *TickScheduler
	at   time.Duration
	seq  uint64
	fn   func()
	done bool
}

// NewTickScheduler creates a scheduler at virtual time zero.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

// Now returns the current virtual time.
func (s *TickScheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d has elapsed.
func (s *TickScheduler) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &tickTimer{s: s, at: s.now + d, seq: s.seq, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves virtual time forward by d, firing every callback that
// comes due. Callbacks may schedule or stop other timers.
func (s *TickScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.remove(t)
		t.done = true
		s.now = t.at
		t.fn()
	}
	s.now = target
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *TickScheduler) Pending() int {
	return len(s.pending)
}

func (s *TickScheduler) nextDue(target time.Duration) *tickTimer {
	var next *tickTimer
	for _, t := range s.pending {
		if t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (s *TickScheduler) remove(t *tickTimer) {
	for i, p := range s.pending {
		if p == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

func (t *tickTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.s.remove(t)
	return true
}
