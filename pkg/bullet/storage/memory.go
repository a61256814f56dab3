package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"ioncannon/magazine/pkg/bullet"
)

// MemoryCollection implements the bullet.Collection interface using an
// in-memory slice. This implementation is intended for testing only and
// should not be used in production.
//
// Store-defined order is insertion order, which also breaks capture-time
// ties in sorted queries.
type MemoryCollection struct {
	docs []*bullet.Document
	mu   sync.RWMutex
}

// NewMemoryCollection creates a new in-memory collection backend.
func NewMemoryCollection() *MemoryCollection {
	return &MemoryCollection{}
}

// Insert stores a copy of the document under a generated UUID identity.
func (c *MemoryCollection) Insert(ctx context.Context, doc *bullet.Document) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	docCopy := *doc
	docCopy.ID = uuid.NewString()
	c.docs = append(c.docs, &docCopy)
	return docCopy.ID, nil
}

// FindByID returns the document with the given identity.
func (c *MemoryCollection) FindByID(ctx context.Context, id string) (*bullet.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", bullet.ErrInvalidID, id)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, doc := range c.docs {
		if doc.ID == id {
			docCopy := *doc
			return &docCopy, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", bullet.ErrNoDocument, id)
}

// Find returns documents per the given options.
func (c *MemoryCollection) Find(ctx context.Context, opts bullet.FindOptions) ([]*bullet.Document, error) {
	c.mu.RLock()
	results := make([]*bullet.Document, 0, len(c.docs))
	for _, doc := range c.docs {
		docCopy := *doc
		results = append(results, &docCopy)
	}
	c.mu.RUnlock()

	switch opts.Sort {
	case bullet.TimeAscending:
		sort.SliceStable(results, func(i, j int) bool { return results[i].Time < results[j].Time })
	case bullet.TimeDescending:
		sort.SliceStable(results, func(i, j int) bool { return results[i].Time > results[j].Time })
	}

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}

// FindStream streams documents per the given options. The channels are
// closed when the stream completes or errors.
func (c *MemoryCollection) FindStream(ctx context.Context, opts bullet.FindOptions) (<-chan *bullet.Document, <-chan error, error) {
	docCh := make(chan *bullet.Document, 100)
	errCh := make(chan error, 1)

	go func() {
		defer close(docCh)
		defer close(errCh)

		docs, err := c.Find(ctx, opts)
		if err != nil {
			errCh <- err
			return
		}

		for _, doc := range docs {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case docCh <- doc:
			}
		}
	}()

	return docCh, errCh, nil
}

// Remove deletes the document with the given identity. A missing document
// is a silent no-op.
func (c *MemoryCollection) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, doc := range c.docs {
		if doc.ID == id {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

// Count returns the total number of documents.
func (c *MemoryCollection) Count(ctx context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.docs)), nil
}

// Close is a no-op for the in-memory collection.
func (c *MemoryCollection) Close() error {
	return nil
}
