package bullet

import (
	"context"
	"errors"
)

// Document is the persisted shape of a bullet's metadata entry. Headers are
// stored serialized as a JSON string; payload bytes never appear here, only
// the blob reference in File.
type Document struct {
	ID      string
	Headers string
	URI     string
	Method  string
	Time    int64
	File    string
}

// SortOrder selects the ordering of a Find result.
type SortOrder int

const (
	// Unsorted returns documents in store-defined order. The order is
	// unspecified but stable within a single query.
	Unsorted SortOrder = iota

	// TimeAscending orders by capture time, oldest first.
	TimeAscending

	// TimeDescending orders by capture time, newest first.
	TimeDescending
)

// FindOptions controls ordering and result size for Find and FindStream.
type FindOptions struct {
	// Sort is the result ordering. Ties in capture time are broken by
	// store-defined order.
	Sort SortOrder

	// Limit caps the number of returned documents. Zero means no limit.
	Limit int
}

// Collection backend sentinel conditions. Backends wrap these so the record
// layer can fold them into its own error kinds with errors.Is.
var (
	// ErrInvalidID signals an identity string that does not parse into
	// the store's native identity format.
	ErrInvalidID = errors.New("invalid document id")

	// ErrNoDocument signals a well-formed identity with no matching
	// document.
	ErrNoDocument = errors.New("no such document")
)

// Collection is the document store holding bullet metadata entries.
// Implementations generate identities on insert and must be safe for
// concurrent use.
type Collection interface {
	// Insert stores a new document and returns its generated identity.
	// The ID field of the given document is ignored.
	Insert(ctx context.Context, doc *Document) (string, error)

	// FindByID returns the document with the given identity. It returns
	// an error wrapping ErrInvalidID for a malformed identity and
	// ErrNoDocument when nothing matches.
	FindByID(ctx context.Context, id string) (*Document, error)

	// Find returns documents per the given options.
	Find(ctx context.Context, opts FindOptions) ([]*Document, error)

	// FindStream streams documents per the given options. The channels
	// are closed when the query completes or errors; callers should
	// drain both.
	FindStream(ctx context.Context, opts FindOptions) (<-chan *Document, <-chan error, error)

	// Remove deletes the document with the given identity. Removing an
	// identity with no matching document is a silent no-op.
	Remove(ctx context.Context, id string) error

	// Count returns the total number of documents.
	Count(ctx context.Context) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}
