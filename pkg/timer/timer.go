// Package timer implements the cooperative countdown-timer scheduler
// driven by externally reported elapsed milliseconds.
package timer

import (
	"slices"

	"github.com/go-ember/ember/pkg/errors"
)

// Callback is invoked when a timer expires. It runs synchronously inside
// the engine's processing pass and must not block.
type Callback func(t *Timer)

// Timer is a countdown timer owned by a Scheduler.
type Timer struct {
	sched     *Scheduler
	period    uint32
	remaining uint32
	periodic  bool
	enabled   bool
	removed   bool
	fn        Callback

	// Data is an opaque slot for the callback's own state.
	Data any
}

// Period returns the timer period in milliseconds.
func (t *Timer) Period() uint32 {
	return t.period
}

// Enabled reports whether the timer is counting down.
func (t *Timer) Enabled() bool {
	return t.enabled && !t.removed
}

// Start re-arms the timer with a full period. Calling Start from inside
// the timer's own callback takes effect immediately after it returns.
func (t *Timer) Start() {
	if t.removed {
		return
	}
	t.remaining = t.period
	t.enabled = true
}

// Stop disables the timer without destroying it.
func (t *Timer) Stop() {
	t.enabled = false
}

// Delete removes the timer from its scheduler. Safe to call from the
// timer's own callback; the slot is reclaimed after callbacks finish.
func (t *Timer) Delete() {
	t.enabled = false
	t.removed = true
}

// Scheduler tracks a bounded set of countdown timers. It is owned by the
// engine's cooperative context; none of its methods are safe for
// concurrent use.
type Scheduler struct {
	timers   []*Timer
	capacity int
	firing   bool
}

// NewScheduler returns a scheduler holding at most capacity timers.
func NewScheduler(capacity int) *Scheduler {
	if capacity <= 0 {
		capacity = 16
	}
	return &Scheduler{capacity: capacity}
}

// New creates a timer. A periodic timer re-arms itself after firing;
// a one-shot timer auto-disables. The timer starts enabled.
func (s *Scheduler) New(periodMS uint32, periodic bool, fn Callback) (*Timer, error) {
	if periodMS == 0 || fn == nil {
		return nil, errors.New("timer.New", errors.KindInvalidParameter)
	}
	if len(s.timers) >= s.capacity {
		return nil, errors.Newf("timer.New", errors.KindAllocation,
			"timer capacity %d exhausted", s.capacity)
	}
	t := &Timer{
		sched:     s,
		period:    periodMS,
		remaining: periodMS,
		periodic:  periodic,
		enabled:   true,
		fn:        fn,
	}
	s.timers = append(s.timers, t)
	return t, nil
}

// Len returns the number of live timers.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.timers {
		if !t.removed {
			n++
		}
	}
	return n
}

// Advance decrements every enabled timer by the elapsed milliseconds and
// fires the expired ones. Each timer fires at most once per call, even if
// elapsed spans several periods: a periodic timer that fell behind re-arms
// with a full period rather than catching up. Returns the number of
// callbacks invoked.
func (s *Scheduler) Advance(elapsedMS uint32) int {
	if elapsedMS == 0 || len(s.timers) == 0 {
		return 0
	}

	fired := 0
	s.firing = true
	for _, t := range s.timers {
		if !t.enabled || t.removed {
			continue
		}
		if t.remaining > elapsedMS {
			t.remaining -= elapsedMS
			continue
		}
		if t.periodic {
			// Carry the sub-period overshoot so firing stays phase-accurate
			// under fine-grained reporting, but never fire more than once
			// per call: a timer that fell behind by whole periods re-arms
			// instead of catching up.
			t.remaining = t.period - (elapsedMS-t.remaining)%t.period
		} else {
			t.remaining = 0
			t.enabled = false
		}
		fired++
		s.fire(t)
	}
	s.firing = false

	s.timers = slices.DeleteFunc(s.timers, func(t *Timer) bool {
		return t.removed
	})
	return fired
}

func (s *Scheduler) fire(t *Timer) {
	defer errors.Recover("timer.fire")
	t.fn(t)
}
