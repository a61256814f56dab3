// Package blob provides the binary payload store that backs captured
// bullets.
//
// Bullet metadata lives in a document collection; payload bytes live here,
// addressed by opaque references generated at Put time. The two are coupled
// only through the reference stored in the bullet's metadata entry.
//
// # Backends
//
//   - FS: one file per object under a fan-out directory tree
//   - SQLite: objects in a blobs table (pure-Go driver)
//   - Memory: in-memory map, for tests
//
// All backends report a missing object through ErrNotExist so callers can
// translate it uniformly:
//
//	rc, err := blobs.Get(ctx, ref)
//	if errors.Is(err, blob.ErrNotExist) {
//	    // reference is stale
//	}
package blob
