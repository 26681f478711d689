// Package clock provides a pausable stopwatch that reports per-frame elapsed
// real time for driving fixed-step simulations.
package clock

import "time"

// Timer measures frame deltas and total running time, excluding time spent
// stopped.
type Timer struct {
	now func() time.Time

	base     time.Time
	prev     time.Time
	curr     time.Time
	stopTime time.Time
	paused   time.Duration
	delta    time.Duration
	stopped  bool
}

// New returns a reset Timer. A nil now uses time.Now, whose readings carry a
// monotonic clock.
func New(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	t := &Timer{now: now}
	t.Reset()
	return t
}

// Reset restarts the timer from the current instant in the running state.
func (t *Timer) Reset() {
	t.curr = t.now()
	t.base = t.curr
	t.prev = t.curr
	t.stopTime = time.Time{}
	t.paused = 0
	t.delta = 0
	t.stopped = false
}

// Start resumes a stopped timer. The stopped interval is excluded from
// TotalTime and from the next delta.
func (t *Timer) Start() {
	if !t.stopped {
		return
	}
	t.curr = t.now()
	t.paused += t.curr.Sub(t.stopTime)
	t.prev = t.curr
	t.stopTime = time.Time{}
	t.stopped = false
}

// Stop pauses the timer.
func (t *Timer) Stop() {
	if t.stopped {
		return
	}
	t.curr = t.now()
	t.stopTime = t.curr
	t.stopped = true
}

// Tick samples the clock and records the time since the previous Tick. The
// delta is zero while stopped and is never negative.
func (t *Timer) Tick() {
	if t.stopped {
		t.delta = 0
		return
	}
	t.curr = t.now()
	t.delta = t.curr.Sub(t.prev)
	t.prev = t.curr
	if t.delta < 0 {
		t.delta = 0
	}
}

// DeltaTime returns the seconds measured by the last Tick.
func (t *Timer) DeltaTime() float64 { return t.delta.Seconds() }

// TotalTime returns the seconds elapsed since Reset, not counting time spent
// stopped.
func (t *Timer) TotalTime() float64 {
	end := t.curr
	if t.stopped {
		end = t.stopTime
	}
	return (end.Sub(t.base) - t.paused).Seconds()
}

// Stopped reports whether the timer is paused.
func (t *Timer) Stopped() bool { return t.stopped }
