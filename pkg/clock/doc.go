// Package clock provides elapsed-time clocks used to timestamp captured
// bullets.
//
// A Clock reports milliseconds elapsed since a fixed reference point rather
// than wall-clock time, so readings from one capture session are directly
// comparable and survive wall-clock adjustments between reads.
//
// # Basic Usage
//
//	c := clock.NewMillis(0)
//	t0 := c.Check() // ~0
//	...
//	t1 := c.Check() // milliseconds since construction
//
// Components that stamp records should accept a Clock dependency explicitly.
// A process-wide default is available through the package-level Initialize,
// Check and Cleanup functions for the application wiring boundary; its lazy
// first-use initialization is guarded for concurrent callers.
//
// The Manual clock only advances when told to and is intended for tests and
// deterministic replay.
package clock
