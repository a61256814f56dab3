package capture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ioncannon/magazine/pkg/blob"
	"ioncannon/magazine/pkg/bullet"
	"ioncannon/magazine/pkg/bullet/storage"
	"ioncannon/magazine/pkg/clock"
)

func newTestRecorder(t *testing.T, cfg *Config) (*Recorder, *bullet.Store, *clock.Manual) {
	t.Helper()

	store := bullet.NewStore(storage.NewMemoryCollection(), blob.NewMemory())
	clk := clock.NewManual(0)

	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Registerer = prometheus.NewRegistry()

	return NewRecorder(store, clk, cfg), store, clk
}

func TestRecorder_RecordPersistsBullet(t *testing.T) {
	ctx := context.Background()
	rec, store, clk := newTestRecorder(t, nil)

	clk.Set(1234)
	err := rec.Record(ctx, &Request{
		Method:  "POST",
		URI:     "http://target/upload",
		Headers: map[string]string{"content-type": "text/plain"},
		Body:    []byte("payload"),
	})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	// Close drains the queue, so the write is durable afterwards.
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() failed: %v", err)
	}
	if latest.Method != "POST" || latest.URI != "http://target/upload" {
		t.Errorf("persisted bullet = %+v, want recorded request fields", latest)
	}
	if latest.Time != 1234 {
		t.Errorf("Time = %d, want the clock reading at Record time (1234)", latest.Time)
	}
	if latest.FileRef == "" {
		t.Error("FileRef not set for a request with a body")
	}
}

func TestRecorder_StampsAtRecordTime(t *testing.T) {
	ctx := context.Background()
	rec, store, clk := newTestRecorder(t, nil)

	// Advance the clock between records; queueing must not reorder the
	// stamps.
	for _, ms := range []int64{100, 200, 300} {
		clk.Set(ms)
		if err := rec.Record(ctx, &Request{Method: "GET", URI: "http://target"}); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	rec.Close()

	got, err := store.AllChronological(ctx)
	if err != nil {
		t.Fatalf("AllChronological() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("persisted %d bullets, want 3", len(got))
	}
	for i, want := range []int64{100, 200, 300} {
		if got[i].Time != want {
			t.Errorf("bullet %d Time = %d, want %d", i, got[i].Time, want)
		}
	}
}

func TestRecorder_DisabledIsNoOp(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Enabled = false
	rec, store, _ := newTestRecorder(t, cfg)

	if err := rec.Record(ctx, &Request{Method: "GET", URI: "http://target"}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	rec.Close()

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0 for a disabled recorder", count)
	}
}

func TestRecorder_RecordAfterClose(t *testing.T) {
	ctx := context.Background()
	rec, _, _ := newTestRecorder(t, nil)

	rec.Close()

	err := rec.Record(ctx, &Request{Method: "GET", URI: "http://target"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Record() after Close error = %v, want context.Canceled", err)
	}
}

func TestRecorder_CloseIsIdempotent(t *testing.T) {
	rec, _, _ := newTestRecorder(t, nil)

	if err := rec.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("second Close() failed: %v", err)
	}
}

func TestRecorder_CloseDrainsBuffer(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.AsyncBuffer = 64
	rec, store, _ := newTestRecorder(t, cfg)

	const n = 50
	for i := 0; i < n; i++ {
		if err := rec.Record(ctx, &Request{Method: "GET", URI: "http://target"}); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	rec.Close()

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != n {
		t.Errorf("Count() = %d, want %d after Close drained the buffer", count, n)
	}
}

func TestRecorder_RecordHonorsContext(t *testing.T) {
	rec, _, _ := newTestRecorder(t, &Config{
		Enabled:      true,
		AsyncBuffer:  1,
		WriteTimeout: 5 * time.Second,
	})
	defer rec.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// With a canceled context the call must return promptly even if the
	// buffer is contended.
	for i := 0; i < 10; i++ {
		if err := rec.Record(ctx, &Request{Method: "GET", URI: "http://target"}); err != nil {
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("Record() error = %v, want context.Canceled", err)
			}
			return
		}
	}
}
