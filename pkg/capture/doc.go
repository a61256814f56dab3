// Package capture turns captured network requests into persisted bullets.
//
// The Recorder sits between producers (whatever observes the traffic) and
// the bullet store. Producers call Record, which stamps the request with the
// capture clock and enqueues it; a background worker performs the actual
// storage writes so producers never block on persistence.
//
//	rec := capture.NewRecorder(store, clk, nil)
//	defer rec.Close()
//
//	err := rec.Record(ctx, &capture.Request{
//	    Method:  "GET",
//	    URI:     "http://target/path",
//	    Headers: headers,
//	    Body:    body,
//	})
//
// Timestamps are taken at Record time, not at write time, so queueing delay
// never skews capture ordering.
//
// The recorder exposes Prometheus metrics for recorded, dropped and failed
// bullets plus write latency and payload size distributions.
package capture
