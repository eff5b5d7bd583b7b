package testutil

import (
	"sync"
	"time"
)

// Epoch is the first time a StepClock returns.
var Epoch = time.Date(2022, time.January, 1, 6, 0, 0, 0, time.UTC)

// StepClock is a deterministic clock for tests. Each call to Now advances
// it by a fixed step, so records written in sequence get distinct, stable
// timestamps.
//
// Thread-safety: All methods are safe for concurrent use.
type StepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewStepClock creates a clock starting at Epoch. A non-positive step
// defaults to one second.
func NewStepClock(step time.Duration) *StepClock {
	if step <= 0 {
		step = time.Second
	}
	return &StepClock{next: Epoch, step: step}
}

// Now returns the current time and advances the clock.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}

// Reset rewinds the clock to Epoch.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next = Epoch
}
