package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"ioncannon/magazine/pkg/bullet"
)

// backends returns every Collection implementation so the shared contract
// tests run against each of them.
func backends(t *testing.T) map[string]bullet.Collection {
	t.Helper()

	sqliteCol, err := NewSQLiteCollection(&SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "bullets.db"),
	})
	if err != nil {
		t.Fatalf("NewSQLiteCollection() failed: %v", err)
	}

	return map[string]bullet.Collection{
		"sqlite": sqliteCol,
		"memory": NewMemoryCollection(),
	}
}

func doc(method, uri string, time int64) *bullet.Document {
	return &bullet.Document{
		Headers: `{"accept":"*/*"}`,
		URI:     uri,
		Method:  method,
		Time:    time,
	}
}

func TestCollection_InsertAssignsIdentity(t *testing.T) {
	ctx := context.Background()

	for name, col := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer col.Close()

			id, err := col.Insert(ctx, doc("GET", "http://target/a", 100))
			if err != nil {
				t.Fatalf("Insert() failed: %v", err)
			}
			if id == "" {
				t.Fatal("Insert() returned an empty identity")
			}

			got, err := col.FindByID(ctx, id)
			if err != nil {
				t.Fatalf("FindByID() failed: %v", err)
			}
			if got.ID != id {
				t.Errorf("FindByID() ID = %q, want %q", got.ID, id)
			}
			if got.URI != "http://target/a" || got.Method != "GET" || got.Time != 100 {
				t.Errorf("FindByID() = %+v, want inserted fields back", got)
			}
			if got.Headers != `{"accept":"*/*"}` {
				t.Errorf("FindByID() Headers = %q, want serialized headers back", got.Headers)
			}
		})
	}
}

func TestCollection_FindByID_InvalidIdentity(t *testing.T) {
	ctx := context.Background()

	for name, col := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer col.Close()

			_, err := col.FindByID(ctx, "not-a-valid-id")
			if !errors.Is(err, bullet.ErrInvalidID) {
				t.Errorf("FindByID() error = %v, want ErrInvalidID", err)
			}
		})
	}
}

func TestCollection_FindByID_NoDocument(t *testing.T) {
	ctx := context.Background()

	for name, col := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer col.Close()

			_, err := col.FindByID(ctx, "11111111-2222-3333-4444-555555555555")
			if !errors.Is(err, bullet.ErrNoDocument) {
				t.Errorf("FindByID() error = %v, want ErrNoDocument", err)
			}
		})
	}
}

func TestCollection_FindSorting(t *testing.T) {
	ctx := context.Background()

	for name, col := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer col.Close()

			for _, tm := range []int64{300, 100, 200} {
				if _, err := col.Insert(ctx, doc("GET", "http://target", tm)); err != nil {
					t.Fatalf("Insert() failed: %v", err)
				}
			}

			asc, err := col.Find(ctx, bullet.FindOptions{Sort: bullet.TimeAscending})
			if err != nil {
				t.Fatalf("Find(ascending) failed: %v", err)
			}
			if got := times(asc); got[0] != 100 || got[1] != 200 || got[2] != 300 {
				t.Errorf("Find(ascending) times = %v, want [100 200 300]", got)
			}

			desc, err := col.Find(ctx, bullet.FindOptions{Sort: bullet.TimeDescending, Limit: 1})
			if err != nil {
				t.Fatalf("Find(descending, limit 1) failed: %v", err)
			}
			if len(desc) != 1 || desc[0].Time != 300 {
				t.Errorf("Find(descending, limit 1) = %v, want single doc with time 300", times(desc))
			}
		})
	}
}

func TestCollection_FindStableTieBreak(t *testing.T) {
	ctx := context.Background()

	for name, col := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer col.Close()

			var ids []string
			for i := 0; i < 3; i++ {
				id, err := col.Insert(ctx, doc("GET", "http://target", 500))
				if err != nil {
					t.Fatalf("Insert() failed: %v", err)
				}
				ids = append(ids, id)
			}

			// Two queries over tied times must agree with each other.
			first, err := col.Find(ctx, bullet.FindOptions{Sort: bullet.TimeAscending})
			if err != nil {
				t.Fatalf("Find() failed: %v", err)
			}
			second, err := col.Find(ctx, bullet.FindOptions{Sort: bullet.TimeAscending})
			if err != nil {
				t.Fatalf("Find() failed: %v", err)
			}
			for i := range first {
				if first[i].ID != second[i].ID {
					t.Fatalf("tie-break order not stable across queries: %v vs %v", first[i].ID, second[i].ID)
				}
			}
		})
	}
}

func TestCollection_FindStream(t *testing.T) {
	ctx := context.Background()

	for name, col := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer col.Close()

			for _, tm := range []int64{30, 10, 20} {
				if _, err := col.Insert(ctx, doc("POST", "http://target", tm)); err != nil {
					t.Fatalf("Insert() failed: %v", err)
				}
			}

			docCh, errCh, err := col.FindStream(ctx, bullet.FindOptions{Sort: bullet.TimeAscending})
			if err != nil {
				t.Fatalf("FindStream() failed: %v", err)
			}

			var got []int64
			for doc := range docCh {
				got = append(got, doc.Time)
			}
			if err := <-errCh; err != nil {
				t.Fatalf("FindStream() stream error: %v", err)
			}

			if len(got) != 3 || got[0] != 10 || got[1] != 20 || got[2] != 30 {
				t.Errorf("FindStream() times = %v, want [10 20 30]", got)
			}
		})
	}
}

func TestCollection_RemoveAndCount(t *testing.T) {
	ctx := context.Background()

	for name, col := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer col.Close()

			id, err := col.Insert(ctx, doc("GET", "http://target", 1))
			if err != nil {
				t.Fatalf("Insert() failed: %v", err)
			}

			count, err := col.Count(ctx)
			if err != nil {
				t.Fatalf("Count() failed: %v", err)
			}
			if count != 1 {
				t.Fatalf("Count() = %d, want 1", count)
			}

			if err := col.Remove(ctx, id); err != nil {
				t.Fatalf("Remove() failed: %v", err)
			}

			count, err = col.Count(ctx)
			if err != nil {
				t.Fatalf("Count() failed: %v", err)
			}
			if count != 0 {
				t.Errorf("Count() after Remove = %d, want 0", count)
			}

			// Removing a missing identity is a silent no-op.
			if err := col.Remove(ctx, id); err != nil {
				t.Errorf("Remove() on missing identity failed: %v", err)
			}
		})
	}
}

func TestSQLiteCollection_NilFileRoundTrip(t *testing.T) {
	ctx := context.Background()

	col, err := NewSQLiteCollection(&SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "bullets.db"),
	})
	if err != nil {
		t.Fatalf("NewSQLiteCollection() failed: %v", err)
	}
	defer col.Close()

	id, err := col.Insert(ctx, doc("GET", "http://target", 1))
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	got, err := col.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID() failed: %v", err)
	}
	if got.File != "" {
		t.Errorf("File = %q, want empty for a document stored without a blob reference", got.File)
	}
}

func times(docs []*bullet.Document) []int64 {
	out := make([]int64, len(docs))
	for i, d := range docs {
		out[i] = d.Time
	}
	return out
}
