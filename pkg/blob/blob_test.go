package blob

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// backends returns a named constructor for every Store implementation so the
// shared contract tests run against each of them.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	fsStore, err := NewFS(&FSConfig{Dir: filepath.Join(t.TempDir(), "blobs")})
	if err != nil {
		t.Fatalf("NewFS() failed: %v", err)
	}

	sqliteStore, err := NewSQLite(&SQLiteConfig{Path: filepath.Join(t.TempDir(), "blobs.db")})
	if err != nil {
		t.Fatalf("NewSQLite() failed: %v", err)
	}

	return map[string]Store{
		"fs":     fsStore,
		"sqlite": sqliteStore,
		"memory": NewMemory(),
	}
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			content := []byte("captured payload bytes")
			ref, err := store.Put(ctx, content)
			if err != nil {
				t.Fatalf("Put() failed: %v", err)
			}
			if ref == "" {
				t.Fatal("Put() returned an empty reference")
			}

			rc, err := store.Get(ctx, ref)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			defer rc.Close()

			got, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("ReadAll() failed: %v", err)
			}
			if string(got) != string(content) {
				t.Errorf("Get() = %q, want %q", got, content)
			}
		})
	}
}

func TestStore_PutGeneratesDistinctRefs(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			content := []byte("same bytes twice")
			ref1, err := store.Put(ctx, content)
			if err != nil {
				t.Fatalf("first Put() failed: %v", err)
			}
			ref2, err := store.Put(ctx, content)
			if err != nil {
				t.Fatalf("second Put() failed: %v", err)
			}

			if ref1 == ref2 {
				t.Errorf("Put() returned the same reference %q for two calls", ref1)
			}

			// Deleting one object must not affect the other.
			if err := store.Delete(ctx, ref1); err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}
			exists, err := store.Exists(ctx, ref2)
			if err != nil {
				t.Fatalf("Exists() failed: %v", err)
			}
			if !exists {
				t.Error("Exists() = false for the surviving object")
			}
		})
	}
}

func TestStore_GetMissingObject(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			_, err := store.Get(ctx, "11111111-2222-3333-4444-555555555555")
			if !errors.Is(err, ErrNotExist) {
				t.Errorf("Get() error = %v, want ErrNotExist", err)
			}
		})
	}
}

func TestStore_ExistsAndDelete(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			ref, err := store.Put(ctx, []byte("short-lived"))
			if err != nil {
				t.Fatalf("Put() failed: %v", err)
			}

			exists, err := store.Exists(ctx, ref)
			if err != nil {
				t.Fatalf("Exists() failed: %v", err)
			}
			if !exists {
				t.Fatal("Exists() = false after Put()")
			}

			if err := store.Delete(ctx, ref); err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}

			exists, err = store.Exists(ctx, ref)
			if err != nil {
				t.Fatalf("Exists() after Delete() failed: %v", err)
			}
			if exists {
				t.Error("Exists() = true after Delete()")
			}

			// Deleting again is a no-op.
			if err := store.Delete(ctx, ref); err != nil {
				t.Errorf("Delete() on a missing object failed: %v", err)
			}
		})
	}
}

func TestStore_EmptyContent(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			ref, err := store.Put(ctx, []byte{})
			if err != nil {
				t.Fatalf("Put() failed: %v", err)
			}

			rc, err := store.Get(ctx, ref)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			defer rc.Close()

			got, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("ReadAll() failed: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("Get() returned %d bytes, want 0", len(got))
			}
		})
	}
}

func TestFS_FanOutLayout(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "blobs")

	store, err := NewFS(&FSConfig{Dir: dir})
	if err != nil {
		t.Fatalf("NewFS() failed: %v", err)
	}
	defer store.Close()

	ref, err := store.Put(ctx, []byte("payload"))
	if err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	// Object must live under a two-character fan-out directory.
	want := filepath.Join(dir, ref[:2], ref)
	if _, err := os.Stat(want); err != nil {
		t.Errorf("object not found at %s: %v", want, err)
	}
}
