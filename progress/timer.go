package progress

import (
	"math"
	"time"
)

// UnknownDuration is returned by Timer.Remaining while nothing is done yet.
const UnknownDuration = time.Duration(math.MaxInt64)

// Unknown is displayed in place of time values that cannot be estimated yet.
const Unknown = "Unknown"

// Timer extrapolates remaining time and ETA from the elapsed time and the
// percent of completed work. A Timer is an immutable value.
type Timer struct {
	startedAt time.Time
	clock     Clock
}

// StartTimer returns a timer started now on the wall clock.
func StartTimer() Timer {
	return NewTimer(RealClock{})
}

// NewTimer returns a timer started at clock.Now() that keeps reading clock.
func NewTimer(clock Clock) Timer {
	if clock == nil {
		clock = RealClock{}
	}
	return Timer{startedAt: clock.Now(), clock: clock}
}

// StartedAt returns when the timer was started.
func (t Timer) StartedAt() time.Time {
	return t.startedAt.UTC()
}

// Elapsed returns the time since the timer was started.
func (t Timer) Elapsed() time.Duration {
	return t.now().Sub(t.startedAt)
}

// Remaining returns how long it takes to reach 100% at the current pace.
// It is UnknownDuration when percent is 0 and never negative.
func (t Timer) Remaining(percent float64) time.Duration {
	if percent == 0 {
		return UnknownDuration
	}
	now := t.now()
	remaining := t.eta(now, percent).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// EstimatedTimeOfArrival returns when the work reaches 100% at the current
// pace. It is the zero time when percent is 0.
func (t Timer) EstimatedTimeOfArrival(percent float64) time.Time {
	if percent == 0 {
		return time.Time{}
	}
	return t.eta(t.now(), percent)
}

func (t Timer) eta(now time.Time, percent float64) time.Time {
	elapsed := now.Sub(t.startedAt)
	total := float64(elapsed) / percent * 100
	if total >= math.MaxInt64 {
		return t.startedAt.Add(UnknownDuration).UTC()
	}
	return t.startedAt.Add(time.Duration(total)).UTC()
}

func (t Timer) now() time.Time {
	if t.clock == nil {
		return time.Now()
	}
	return t.clock.Now()
}
