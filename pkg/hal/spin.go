package hal

import (
	"errors"
	"time"
)

// ErrInvalidPeriod indicates a non-positive timer period.
var ErrInvalidPeriod = errors.New("invalid timer period")

// SpinTimer is a Timer backed by the monotonic clock.
// Wait busy-polls instead of sleeping: the scheduler's sleep granularity is
// far coarser than a bit period.
type SpinTimer struct {
	period   time.Duration
	deadline time.Time
	now      func() time.Time
}

// NewSpinTimer creates a SpinTimer ticking every period.
// The first tick is one period after creation.
func NewSpinTimer(period time.Duration) (*SpinTimer, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	t := &SpinTimer{period: period, now: time.Now}
	t.deadline = t.now().Add(period)
	return t, nil
}

// Period returns the tick period.
func (t *SpinTimer) Period() time.Duration {
	return t.period
}

// Wait implements Timer.
func (t *SpinTimer) Wait() error {
	now := t.now()
	if now.After(t.deadline) {
		// overrun: re-anchor instead of firing a burst of late ticks.
		t.deadline = now.Add(t.period)
		return nil
	}
	for now.Before(t.deadline) {
		now = t.now()
	}
	t.deadline = t.deadline.Add(t.period)
	return nil
}
