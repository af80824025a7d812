package runner

import "slices"

// TimerID identifies a scheduled timer. The zero value never names a timer.
type TimerID uint64

type timer struct {
	id        TimerID
	remaining float64
	fn        func()
}

// Timers schedules callbacks on simulation time. Time only moves when
// Advance is called, so paused runs and open quizzes freeze every timer.
type Timers struct {
	next    TimerID
	pending []*timer
	closed  bool
}

// NewTimers creates an empty timer set.
func NewTimers() *Timers {
	return &Timers{}
}

// After schedules fn to run once seconds of simulation time have elapsed.
// It returns 0 once the set is closed.
func (t *Timers) After(seconds float64, fn func()) TimerID {
	if t.closed {
		return 0
	}
	t.next++
	t.pending = append(t.pending, &timer{id: t.next, remaining: seconds, fn: fn})
	return t.next
}

// Cancel removes a pending timer. It returns false if id is not pending.
func (t *Timers) Cancel(id TimerID) bool {
	if id == 0 {
		return false
	}
	for i, tm := range t.pending {
		if tm.id == id {
			t.pending = slices.Delete(t.pending, i, i+1)
			return true
		}
	}
	return false
}

// Remaining returns the time left on a pending timer.
func (t *Timers) Remaining(id TimerID) (float64, bool) {
	if id == 0 {
		return 0, false
	}
	for _, tm := range t.pending {
		if tm.id == id {
			return tm.remaining, true
		}
	}
	return 0, false
}

// Advance moves simulation time forward and fires every timer that expired,
// earliest deadline first. Timers scheduled by a callback start counting on
// the next Advance.
func (t *Timers) Advance(dt float64) {
	if t.closed || len(t.pending) == 0 {
		return
	}

	var fired []*timer
	kept := t.pending[:0]
	for _, tm := range t.pending {
		tm.remaining -= dt
		if tm.remaining <= 0 {
			fired = append(fired, tm)
		} else {
			kept = append(kept, tm)
		}
	}
	t.pending = kept

	slices.SortStableFunc(fired, func(a, b *timer) int {
		switch {
		case a.remaining < b.remaining:
			return -1
		case a.remaining > b.remaining:
			return 1
		}
		return 0
	})
	for _, tm := range fired {
		if t.closed {
			return
		}
		tm.fn()
	}
}

// Pending returns the number of scheduled timers.
func (t *Timers) Pending() int {
	return len(t.pending)
}

// CancelAll drops every pending timer without firing it and returns how many
// were dropped.
func (t *Timers) CancelAll() int {
	n := len(t.pending)
	t.pending = t.pending[:0]
	return n
}

// Close cancels every pending timer and refuses new ones.
// It returns false if the set was already closed.
func (t *Timers) Close() bool {
	if t.closed {
		return false
	}
	t.CancelAll()
	t.closed = true
	return true
}

// Closed reports whether Close has been called.
func (t *Timers) Closed() bool {
	return t.closed
}
