package clock

import "sync"

var (
	// defaultClock holds the process-wide clock instance.
	defaultClock Clock

	// defaultMu protects access to defaultClock, including lazy
	// initialization on a concurrent first Check.
	defaultMu sync.Mutex
)

// Initialize installs the process-wide default clock. It replaces any
// previously installed clock, which makes it suitable for swapping in a
// Manual clock from tests.
//
// Most code should take a Clock dependency explicitly; the process-wide
// default exists for the application wiring boundary only.
func Initialize(c Clock) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClock = c
}

// Check returns the reading of the process-wide default clock. If no clock
// has been installed, a Millis clock with zero offset is created on first
// use.
func Check() int64 {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClock == nil {
		defaultClock = NewMillis(0)
	}
	return defaultClock.Check()
}

// Cleanup discards the process-wide default clock. The next Check lazily
// creates a fresh Millis clock.
//
// Unlike a sync.Once guarded singleton, the default clock is deliberately
// re-initializable so tests can cycle Cleanup/Initialize.
func Cleanup() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClock = nil
}
