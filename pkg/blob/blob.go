package blob

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is the "no such object" signal reported by every backend when
// a reference does not resolve to a stored blob. Callers should test for it
// with errors.Is.
var ErrNotExist = errors.New("blob: object does not exist")

// Store is a content store addressed by opaque string references. A new
// reference is generated for every Put, so two puts of identical bytes yield
// distinct objects and deleting one never affects the other.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores the given bytes and returns the generated reference.
	Put(ctx context.Context, content []byte) (string, error)

	// Get returns a reader over the object's bytes. It returns an error
	// wrapping ErrNotExist if the reference does not resolve.
	// The caller must close the returned reader.
	Get(ctx context.Context, ref string) (io.ReadCloser, error)

	// Exists reports whether the reference resolves to a stored object.
	Exists(ctx context.Context, ref string) (bool, error)

	// Delete removes the object. Deleting a reference that does not
	// resolve is a no-op.
	Delete(ctx context.Context, ref string) error

	// Close releases any resources held by the backend.
	Close() error
}
