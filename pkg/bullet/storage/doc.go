// Package storage provides document collection backends for bullet metadata.
//
// The bullet.Collection interface is implemented by:
//
//   - SQLite: embedded database for single-node deployments
//   - Memory: in-memory collection for testing
//
// # SQLite Backend
//
// The SQLite backend stores one row per bullet with WAL mode for concurrent
// reads and writes, a busy timeout for lock handling, and an index on the
// capture time for chronological queries. The schema is created on first use
// and its version tracked in a schema_version table.
//
//	col, err := storage.NewSQLiteCollection(&storage.SQLiteConfig{
//	    Path: "data/bullets.db",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer col.Close()
//
// # Identity
//
// Both backends generate UUID identities on insert and validate identity
// format on lookup. A malformed identity fails with bullet.ErrInvalidID and
// a missing document with bullet.ErrNoDocument; the record layer collapses
// both into its NotFound kind.
package storage
