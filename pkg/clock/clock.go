package clock

import (
	"sync"
	"time"
)

// Clock supplies elapsed-time readings in milliseconds relative to a fixed
// reference point. Implementations must be safe for concurrent use.
type Clock interface {
	// Check returns the elapsed time in milliseconds.
	Check() int64
}

// Millis is a wall-clock backed Clock. The reference point is fixed at
// construction as "now minus offset", so a clock can be created already
// partway through its range (e.g. when resuming a capture session).
type Millis struct {
	zero time.Time
}

// NewMillis creates a Millis clock whose reading starts at the given offset.
// An offset of zero starts the clock at 0 ms.
func NewMillis(offset time.Duration) *Millis {
	return &Millis{zero: time.Now().Add(-offset)}
}

// Check returns the milliseconds elapsed since the clock's reference point.
func (c *Millis) Check() int64 {
	return time.Since(c.zero).Milliseconds()
}

// Manual is a settable Clock for tests and deterministic replay. It only
// moves when Set or Advance is called.
type Manual struct {
	mu  sync.Mutex
	now int64
}

// NewManual creates a Manual clock starting at the given reading.
func NewManual(start int64) *Manual {
	return &Manual{now: start}
}

// Check returns the current manual reading.
func (c *Manual) Check() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to an absolute reading.
func (c *Manual) Set(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = ms
}

// Advance moves the clock forward by the given duration.
func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d.Milliseconds()
}
