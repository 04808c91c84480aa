package schedule

import (
	"sync"
	"time"
)

// Simulated is a manual clock and scheduler. Time only moves on Advance or
// Set; due callbacks run synchronously on the goroutine calling Advance.
type Simulated struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers map[uint64]*simTimer
}

type simTimer struct {
	id       uint64
	due      time.Time
	interval time.Duration
	fn       func()
}

type simHandle struct {
	s  *Simulated
	id uint64
}

func (h simHandle) Cancel() {
	h.s.mu.Lock()
	delete(h.s.timers, h.id)
	h.s.mu.Unlock()
}

func NewSimulated(start time.Time) *Simulated {
	return &Simulated{now: start, timers: map[uint64]*simTimer{}}
}

func (s *Simulated) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Simulated) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return s.register(interval, interval, fn)
}

func (s *Simulated) After(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	return s.register(delay, 0, fn)
}

func (s *Simulated) register(delay, interval time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.timers[s.seq] = &simTimer{id: s.seq, due: s.now.Add(delay), interval: interval, fn: fn}
	return simHandle{s: s, id: s.seq}
}

// Advance moves the clock forward by d, running every callback that falls
// due on the way in due-time order. Ties run in registration order.
// Callbacks may cancel or register timers.
func (s *Simulated) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()
	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.due
		fn := next.fn
		if next.interval > 0 {
			next.due = next.due.Add(next.interval)
		} else {
			delete(s.timers, next.id)
		}
		s.mu.Unlock()
		fn()
	}
}

// Set jumps the clock to t without running anything, like a process that
// was suspended. Periodic timers that fell behind resume from their next
// due time on the following Advance.
func (s *Simulated) Set(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = t
	for _, tm := range s.timers {
		if tm.interval > 0 && tm.due.Before(t) {
			missed := t.Sub(tm.due)/tm.interval + 1
			tm.due = tm.due.Add(missed * tm.interval)
		}
	}
}

// Pending reports how many timers are registered.
func (s *Simulated) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Simulated) nextDue(limit time.Time) *simTimer {
	var next *simTimer
	for _, tm := range s.timers {
		if tm.due.After(limit) {
			continue
		}
		if next == nil || tm.due.Before(next.due) || (tm.due.Equal(next.due) && tm.id < next.id) {
			next = tm
		}
	}
	return next
}
