package blob

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteConfig configures the SQLite blob store.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS blobs (
    ref        TEXT PRIMARY KEY,
    content    BLOB NOT NULL,
    size_bytes INTEGER NOT NULL,
    sha256     TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLite implements Store in a single SQLite database file. Objects live in
// a blobs table keyed by reference, with size and checksum recorded
// alongside the bytes.
type SQLite struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLite creates a SQLite blob store at config.Path, creating the schema
// on first use.
func NewSQLite(config *SQLiteConfig) (*SQLite, error) {
	if config == nil || config.Path == "" {
		return nil, fmt.Errorf("blob: sqlite store requires a database path")
	}

	busyTimeout := config.BusyTimeout
	if busyTimeout == 0 {
		busyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		config.Path, busyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("blob: open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("blob: create schema: %w", err)
	}

	logger := slog.Default().With("component", "blob.sqlite")
	logger.Info("sqlite blob store initialized", "path", config.Path)

	return &SQLite{db: db, logger: logger}, nil
}

// Put stores the object under a freshly generated reference.
func (s *SQLite) Put(ctx context.Context, content []byte) (string, error) {
	ref := uuid.NewString()
	sum := sha256.Sum256(content)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blobs (ref, content, size_bytes, sha256) VALUES (?, ?, ?, ?)`,
		ref, content, len(content), hex.EncodeToString(sum[:]),
	)
	if err != nil {
		return "", fmt.Errorf("blob: store object: %w", err)
	}

	s.logger.Debug("object stored", "ref", ref, "size_bytes", len(content))
	return ref, nil
}

// Get returns a reader over the object's bytes.
func (s *SQLite) Get(ctx context.Context, ref string) (io.ReadCloser, error) {
	var content []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM blobs WHERE ref = ?`, ref,
	).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %q", ErrNotExist, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("blob: load object %q: %w", ref, err)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// Exists reports whether the reference resolves to a stored object.
func (s *SQLite) Exists(ctx context.Context, ref string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM blobs WHERE ref = ?`, ref,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("blob: check object %q: %w", ref, err)
	}
	return true, nil
}

// Delete removes the object. A missing object is a no-op.
func (s *SQLite) Delete(ctx context.Context, ref string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE ref = ?`, ref)
	if err != nil {
		return fmt.Errorf("blob: remove object %q: %w", ref, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("blob: close database: %w", err)
	}
	return nil
}
