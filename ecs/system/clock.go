package system

import "time"

// Clock returns monotonic time elapsed since an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

type SystemClock struct {
	origin time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

func (c *SystemClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock only moves when told to.
type ManualClock struct {
	now time.Duration
}

func (c *ManualClock) Now() time.Duration {
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.now += d
}

func (c *ManualClock) Set(now time.Duration) {
	c.now = now
}
