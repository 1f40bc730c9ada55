package prompt

import "time"

// Timer fires every period of accumulated frame time.
type Timer struct {
	period  time.Duration
	elapsed time.Duration
}

// NewTimer creates a timer with the given period. Non-positive periods never fire.
func NewTimer(period time.Duration) *Timer {
	return &Timer{period: period}
}

// Period returns the timer period.
func (t *Timer) Period() time.Duration {
	return t.period
}

// Reset discards accumulated time.
func (t *Timer) Reset() {
	t.elapsed = 0
}

// Advance adds dt and returns how many periods completed.
func (t *Timer) Advance(dt time.Duration) int {
	if t.period <= 0 || dt <= 0 {
		return 0
	}
	t.elapsed += dt
	fired := int(t.elapsed / t.period)
	t.elapsed -= time.Duration(fired) * t.period
	return fired
}
