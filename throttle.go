package engine

import "time"

// DefaultThrottleInterval is the interval used by NewThrottle when none is given.
const DefaultThrottleInterval = time.Second

// Throttle lets an action through at most once per interval.
// It is used for per-frame log lines (FPS, debug traces) that would
// otherwise flood the output.
type Throttle struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewThrottle creates a throttle. A non-positive interval means
// DefaultThrottleInterval.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = DefaultThrottleInterval
	}
	t := &Throttle{interval: interval, now: time.Now}
	t.last = t.now()
	return t
}

// Allow reports whether the interval has elapsed since the last allowed call,
// and if so restarts the interval.
func (t *Throttle) Allow() bool {
	now := t.now()
	if now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}

// Do calls fn if the throttle allows it.
func (t *Throttle) Do(fn func()) {
	if t.Allow() {
		fn()
	}
}
