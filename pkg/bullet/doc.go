// Package bullet models captured network requests and their persistence.
//
// A Bullet is one captured request: method, URI, headers, an optional binary
// payload and an elapsed-time reading from the capture clock. Metadata lives
// in a document Collection; payload bytes live in a companion blob store,
// coupled to the record only through the stored file reference.
//
// # Lifecycle
//
// A bullet is created in memory (unsaved, empty ID), persisted exactly once
// with Store.Save, reconstructed on retrieval, and removed with Store.Delete
// which clears both the metadata entry and the blob. There is no update
// operation.
//
//	b := bullet.New(bullet.Fields{
//	    Method:  "GET",
//	    URI:     "http://target/path",
//	    Headers: map[string]string{"accept": "application/json"},
//	    Content: payload,
//	    Time:    clk.Check(),
//	})
//	if err := store.Save(ctx, b); err != nil {
//	    ...
//	}
//
// # Error kinds
//
// Lookups fail with NotFoundError; a malformed identity and a missing record
// are deliberately collapsed into that one kind. Payload access fails with
// NoFileError when the blob is unset or gone. Backend failures are wrapped
// as StorageError by the backends themselves and otherwise propagate
// unmodified; this layer adds no retries and no recovery.
//
// The one silent recovery is header normalization: New accepts headers as a
// map, a JSON string, or nil, and degrades malformed input to an empty map
// instead of failing.
package bullet
