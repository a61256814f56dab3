package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Memory implements Store using an in-memory map. This implementation is
// intended for testing only and should not be used in production.
type Memory struct {
	objects map[string][]byte
	mu      sync.RWMutex
}

// NewMemory creates a new in-memory blob store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Put stores a copy of the object under a freshly generated reference.
func (s *Memory) Put(ctx context.Context, content []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := uuid.NewString()
	s.objects[ref] = bytes.Clone(content)
	return ref, nil
}

// Get returns a reader over the object's bytes.
func (s *Memory) Get(ctx context.Context, ref string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.objects[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotExist, ref)
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(content))), nil
}

// Exists reports whether the reference resolves to a stored object.
func (s *Memory) Exists(ctx context.Context, ref string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.objects[ref]
	return ok, nil
}

// Delete removes the object. A missing object is a no-op.
func (s *Memory) Delete(ctx context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, ref)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Memory) Close() error {
	return nil
}

// Len returns the number of stored objects. Test helper.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
