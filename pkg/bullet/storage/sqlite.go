package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"ioncannon/magazine/pkg/bullet"
)

// SQLiteConfig contains configuration for the SQLite collection backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/bullets.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteCollection implements the bullet.Collection interface using SQLite.
type SQLiteCollection struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteCollection creates a new SQLite collection backend. It
// initializes the database schema and enables WAL mode if configured.
func NewSQLiteCollection(config *SQLiteConfig) (*SQLiteCollection, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "bullet.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, bullet.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	c := &SQLiteCollection{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := c.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite collection initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return c, nil
}

// initialize sets up the database schema and enables WAL mode.
func (c *SQLiteCollection) initialize() error {
	if c.config.WALMode {
		if _, err := c.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return bullet.NewStorageError("sqlite", "enable_wal", err)
		}
		c.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := c.config.BusyTimeout.Milliseconds()
	if _, err := c.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return bullet.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := c.db.Exec(Schema); err != nil {
		return bullet.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := c.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return bullet.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := c.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return bullet.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return bullet.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	c.logger.Debug("schema version verified", "version", version)
	return nil
}

// Insert stores a new document under a generated UUID identity.
func (c *SQLiteCollection) Insert(ctx context.Context, doc *bullet.Document) (string, error) {
	id := uuid.NewString()

	var file any
	if doc.File != "" {
		file = doc.File
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO bullets (id, headers, uri, method, time, file) VALUES (?, ?, ?, ?, ?, ?)`,
		id, doc.Headers, doc.URI, doc.Method, doc.Time, file,
	)
	if err != nil {
		return "", bullet.NewStorageError("sqlite", "insert", err)
	}

	return id, nil
}

// FindByID returns the document with the given identity.
func (c *SQLiteCollection) FindByID(ctx context.Context, id string) (*bullet.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", bullet.ErrInvalidID, id)
	}

	row := c.db.QueryRowContext(ctx,
		`SELECT id, headers, uri, method, time, file FROM bullets WHERE id = ?`, id,
	)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %q", bullet.ErrNoDocument, id)
	}
	if err != nil {
		return nil, bullet.NewStorageError("sqlite", "find_by_id", err)
	}
	return doc, nil
}

// Find returns documents per the given options.
func (c *SQLiteCollection) Find(ctx context.Context, opts bullet.FindOptions) ([]*bullet.Document, error) {
	rows, err := c.db.QueryContext(ctx, buildFindQuery(opts))
	if err != nil {
		return nil, bullet.NewStorageError("sqlite", "find", err)
	}
	defer rows.Close()

	docs := []*bullet.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, bullet.NewStorageError("sqlite", "scan", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, bullet.NewStorageError("sqlite", "find", err)
	}

	return docs, nil
}

// FindStream streams documents per the given options. The channels are
// closed when the query completes or errors.
func (c *SQLiteCollection) FindStream(ctx context.Context, opts bullet.FindOptions) (<-chan *bullet.Document, <-chan error, error) {
	docCh := make(chan *bullet.Document, 100)
	errCh := make(chan error, 1)

	go func() {
		defer close(docCh)
		defer close(errCh)

		rows, err := c.db.QueryContext(ctx, buildFindQuery(opts))
		if err != nil {
			errCh <- bullet.NewStorageError("sqlite", "find_stream", err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			default:
			}

			doc, err := scanDocument(rows.Scan)
			if err != nil {
				errCh <- bullet.NewStorageError("sqlite", "scan", err)
				return
			}

			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case docCh <- doc:
			}
		}

		if err := rows.Err(); err != nil {
			errCh <- bullet.NewStorageError("sqlite", "find_stream", err)
		}
	}()

	return docCh, errCh, nil
}

// Remove deletes the document with the given identity. A missing document
// is a silent no-op.
func (c *SQLiteCollection) Remove(ctx context.Context, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM bullets WHERE id = ?`, id); err != nil {
		return bullet.NewStorageError("sqlite", "remove", err)
	}
	return nil
}

// Count returns the total number of documents.
func (c *SQLiteCollection) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bullets`).Scan(&count); err != nil {
		return 0, bullet.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (c *SQLiteCollection) Close() error {
	if err := c.db.Close(); err != nil {
		return bullet.NewStorageError("sqlite", "close", err)
	}
	c.logger.Info("SQLite collection closed")
	return nil
}

// buildFindQuery renders the SELECT for the given options. Rowid breaks
// capture-time ties so ordering stays stable within a single query.
func buildFindQuery(opts bullet.FindOptions) string {
	query := `SELECT id, headers, uri, method, time, file FROM bullets`

	switch opts.Sort {
	case bullet.TimeAscending:
		query += " ORDER BY time ASC, rowid ASC"
	case bullet.TimeDescending:
		query += " ORDER BY time DESC, rowid ASC"
	}

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	return query
}

// scanDocument scans one row into a Document, mapping the nullable file
// column back to an empty string.
func scanDocument(scan func(dest ...any) error) (*bullet.Document, error) {
	var doc bullet.Document
	var file sql.NullString

	if err := scan(&doc.ID, &doc.Headers, &doc.URI, &doc.Method, &doc.Time, &file); err != nil {
		return nil, err
	}
	if file.Valid {
		doc.File = file.String
	}
	return &doc, nil
}
