package engine

import (
	"testing"
	"time"
)

func TestThrottle(t *testing.T) {
	now := time.Unix(100, 0)
	th := NewThrottle(time.Second)
	th.now = func() time.Time { return now }
	th.last = now

	if th.Allow() {
		t.Error("expected first call inside the interval to be throttled")
	}

	now = now.Add(999 * time.Millisecond)
	if th.Allow() {
		t.Error("expected call before the interval to be throttled")
	}

	now = now.Add(time.Millisecond)
	calls := 0
	th.Do(func() { calls++ })
	th.Do(func() { calls++ })
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestThrottleDefaultInterval(t *testing.T) {
	if th := NewThrottle(0); th.interval != DefaultThrottleInterval {
		t.Errorf("expected %v, got %v", DefaultThrottleInterval, th.interval)
	}
}
