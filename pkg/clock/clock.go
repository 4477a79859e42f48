package clock

import (
	"sync"
	"time"
)

// Clock provides the current time. Records are stamped through it so tests stay deterministic.
type Clock interface {
	Now() time.Time
}

// RealClock returns the current wall clock time in UTC.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns the same instant.
type FixedClock struct{ t time.Time }

func NewFixed(t time.Time) FixedClock { return FixedClock{t: t} }

func (f FixedClock) Now() time.Time { return f.t }

// StepClock starts at a given instant and advances by step after every call.
// It gives successive records strictly increasing timestamps.
type StepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func NewStep(start time.Time, step time.Duration) *StepClock {
	return &StepClock{next: start, step: step}
}

func (s *StepClock) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.next
	s.next = s.next.Add(s.step)
	return now
}
