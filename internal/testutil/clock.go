package testutil

import (
	"sync"

	"github.com/roach88/elapse/internal/chrono"
)

// FixedClock is a wall clock that only moves when a test moves it.
//
// It satisfies engine.Clock, so commands that resolve "now" produce the
// same output on every run.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu    sync.Mutex
	start chrono.Instant
	now   chrono.Instant
}

// NewFixedClock creates a clock stopped at now.
func NewFixedClock(now chrono.Instant) *FixedClock {
	return &FixedClock{start: now, now: now}
}

// Now returns the current fixed instant.
func (c *FixedClock) Now() chrono.Instant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to i.
func (c *FixedClock) Set(i chrono.Instant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = i
}

// Advance moves the clock forward by whole seconds. Negative values move
// it backwards.
func (c *FixedClock) Advance(seconds int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now.Seconds += seconds
}

// Reset returns the clock to the instant it was created with.
func (c *FixedClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}
