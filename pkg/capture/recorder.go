package capture

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ioncannon/magazine/pkg/bullet"
	"ioncannon/magazine/pkg/clock"
)

// Request is one captured network request handed to the recorder by a
// producer.
type Request struct {
	// Method is the request verb.
	Method string

	// URI is the request target.
	URI string

	// Headers holds the captured request headers.
	Headers map[string]string

	// Body is the raw payload, if any.
	Body []byte
}

// Config contains configuration for the capture recorder.
type Config struct {
	// Enabled enables capture recording. When false, Record is a no-op.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000
	AsyncBuffer int

	// WriteTimeout bounds both the wait for buffer space in Record and
	// each storage write in the worker.
	// Default: 5 seconds
	WriteTimeout time.Duration

	// Registerer receives the recorder's Prometheus collectors.
	// Default: the global default registerer.
	Registerer prometheus.Registerer
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder turns captured requests into bullets and persists them
// asynchronously so producers never block on storage writes. Each request is
// stamped with the injected clock at Record time, before it enters the
// queue.
type Recorder struct {
	store      *bullet.Store
	clk        clock.Clock
	config     *Config
	bulletChan chan *bullet.Bullet
	done       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
	metrics    *Metrics
	logger     *slog.Logger
}

// defaultClock routes through the process-wide default clock. It backs a
// Recorder constructed without an explicit clock, keeping the singleton
// confined to the wiring boundary.
type defaultClock struct{}

func (defaultClock) Check() int64 { return clock.Check() }

// NewRecorder creates a capture recorder over the given store. A nil clk
// falls back to the process-wide default clock; a nil config uses
// DefaultConfig.
func NewRecorder(store *bullet.Store, clk clock.Clock, config *Config) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}
	if config.AsyncBuffer <= 0 {
		config.AsyncBuffer = DefaultConfig().AsyncBuffer
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultConfig().WriteTimeout
	}
	if clk == nil {
		clk = defaultClock{}
	}

	r := &Recorder{
		store:      store,
		clk:        clk,
		config:     config,
		bulletChan: make(chan *bullet.Bullet, config.AsyncBuffer),
		done:       make(chan struct{}),
		metrics:    NewMetrics(config.Registerer),
		logger:     slog.Default().With("component", "capture.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("capture recorder initialized",
		"enabled", config.Enabled,
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// Record stamps the request with the capture clock, builds a bullet and
// enqueues it for async writing. It returns immediately; if the buffer stays
// full for the configured write timeout, or the recorder is shutting down,
// the bullet is dropped and an error returned.
func (r *Recorder) Record(ctx context.Context, req *Request) error {
	if !r.config.Enabled {
		return nil
	}

	// A buffered send could still win the select below after shutdown;
	// check first so post-Close records fail instead of vanishing.
	select {
	case <-r.done:
		r.metrics.dropped.WithLabelValues("shutdown").Inc()
		return context.Canceled
	default:
	}

	b := bullet.New(bullet.Fields{
		Headers: req.Headers,
		URI:     req.URI,
		Method:  req.Method,
		Content: req.Body,
		Time:    r.clk.Check(),
	})
	r.metrics.payloadBytes.Observe(float64(len(req.Body)))

	select {
	case r.bulletChan <- b:
		return nil
	case <-r.done:
		r.metrics.dropped.WithLabelValues("shutdown").Inc()
		r.logger.Warn("recorder shutting down, dropping bullet",
			"method", b.Method,
			"uri", b.URI,
		)
		return context.Canceled
	case <-ctx.Done():
		r.metrics.dropped.WithLabelValues("canceled").Inc()
		return ctx.Err()
	case <-time.After(r.config.WriteTimeout):
		r.metrics.dropped.WithLabelValues("buffer_full").Inc()
		r.logger.Error("capture buffer full, dropping bullet",
			"method", b.Method,
			"uri", b.URI,
			"channel_capacity", r.config.AsyncBuffer,
		)
		return context.DeadlineExceeded
	}
}

// worker drains the bullet channel and writes each bullet to storage. On
// shutdown it finishes whatever is still buffered before exiting.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case b := <-r.bulletChan:
			r.writeBullet(b)
		case <-r.done:
			for {
				select {
				case b := <-r.bulletChan:
					r.writeBullet(b)
				default:
					return
				}
			}
		}
	}
}

// writeBullet saves one bullet with the configured write timeout.
func (r *Recorder) writeBullet(b *bullet.Bullet) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	start := time.Now()
	err := r.store.Save(ctx, b)
	r.metrics.writeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		r.metrics.records.WithLabelValues("error").Inc()
		r.logger.Error("failed to save bullet",
			"method", b.Method,
			"uri", b.URI,
			"error", err,
		)
		return
	}

	r.metrics.records.WithLabelValues("success").Inc()
}

// Close gracefully shuts down the recorder, draining the buffer and waiting
// for pending writes to complete. It is safe to call more than once.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		r.logger.Info("shutting down capture recorder")
		close(r.done)
		r.wg.Wait()
	})
	return nil
}
