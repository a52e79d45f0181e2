package models

import (
	"sync"
	"time"
)

// Clock hands out UTC timestamps truncated to milliseconds that never repeat
// within a process. Comment permalinks are derived from these timestamps, so
// two comments stamped by the same Clock cannot share a permalink.
type Clock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewClock creates a Clock reading the wall clock.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockFrom creates a Clock reading from now, used by tests to pin time.
func NewClockFrom(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the next timestamp.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC().Truncate(time.Millisecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Millisecond)
	}
	c.last = t
	return t
}
