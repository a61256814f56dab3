package capture

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for the capture recorder.
type Metrics struct {
	// Recorded bullets by write result
	records *prometheus.CounterVec

	// Bullets dropped before reaching storage
	dropped *prometheus.CounterVec

	// Storage write latency
	writeDuration prometheus.Histogram

	// Captured payload sizes
	payloadBytes prometheus.Histogram
}

// NewMetrics creates a new Metrics instance with Prometheus collectors
// registered on the given registerer. A nil registerer uses the default
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		records: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "magazine_capture_records_total",
				Help: "Total number of bullets recorded, by storage write result",
			},
			[]string{"result"},
		),

		dropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "magazine_capture_dropped_total",
				Help: "Total number of bullets dropped before reaching storage",
			},
			[]string{"reason"},
		),

		writeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "magazine_capture_write_duration_seconds",
				Help:    "Latency of bullet storage writes",
				Buckets: prometheus.DefBuckets,
			},
		),

		payloadBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "magazine_capture_payload_bytes",
				Help:    "Size of captured payloads in bytes",
				Buckets: prometheus.ExponentialBuckets(64, 4, 10),
			},
		),
	}
}
