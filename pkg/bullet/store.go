package bullet

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"ioncannon/magazine/pkg/blob"
)

// Store maps bullets to and from a document collection and its companion
// blob store. It enforces the content/file-reference coupling and provides
// lookup, ordering and bulk operations.
//
// The two underlying writes of a Save (blob put, metadata insert) are not
// wrapped in a cross-store transaction. Each write is atomic on its own, so
// concurrent Saves are safe, but a single Save is not atomic across both
// stores.
type Store struct {
	col    Collection
	blobs  blob.Store
	logger *slog.Logger
}

// NewStore creates a bullet store over the given collection and blob store.
func NewStore(col Collection, blobs blob.Store) *Store {
	return &Store{
		col:    col,
		blobs:  blobs,
		logger: slog.Default().With("component", "bullet.store"),
	}
}

// Save persists an unsaved bullet: headers are serialized for storage, a
// non-empty payload is written to the blob store and its reference recorded,
// the metadata entry is inserted, and the generated identity is assigned to
// the bullet.
//
// Calling Save on a bullet that already has an ID inserts a second,
// independent record; callers must not do this. The contract is documented
// rather than enforced.
//
// If the metadata insert fails after a successful blob write, Save attempts
// a best-effort delete of the just-written blob. If that cleanup also fails
// the blob is orphaned; the orphan is logged, not repaired.
func (s *Store) Save(ctx context.Context, b *Bullet) error {
	headers, err := json.Marshal(b.Headers)
	if err != nil {
		return err
	}

	doc := &Document{
		Headers: string(headers),
		URI:     b.URI,
		Method:  b.Method,
		Time:    b.Time,
	}

	if len(b.Content) > 0 {
		ref, err := s.blobs.Put(ctx, b.Content)
		if err != nil {
			return err
		}
		b.FileRef = ref
		doc.File = ref
	}

	id, err := s.col.Insert(ctx, doc)
	if err != nil {
		if doc.File != "" {
			if cleanupErr := s.blobs.Delete(ctx, doc.File); cleanupErr != nil {
				s.logger.Error("orphaned blob after failed insert",
					"ref", doc.File,
					"error", cleanupErr,
				)
			}
			b.FileRef = ""
		}
		return err
	}

	b.ID = id
	s.logger.Debug("bullet saved",
		"id", b.ID,
		"method", b.Method,
		"uri", b.URI,
		"time_ms", b.Time,
		"has_file", doc.File != "",
	)
	return nil
}

// HasFile reports whether the bullet has a payload reachable right now: its
// file reference is set and the blob store confirms the object exists. A
// stale reference left by an out-of-band deletion yields false, not an
// error.
func (s *Store) HasFile(ctx context.Context, b *Bullet) (bool, error) {
	if b.FileRef == "" {
		return false, nil
	}
	return s.blobs.Exists(ctx, b.FileRef)
}

// GetFile returns a reader over the bullet's payload bytes. It returns a
// NoFileError when the file reference is unset, and also when the reference
// is set but the blob store no longer has the object. Callers that need to
// distinguish "never had a payload" should check HasFile first.
//
// The caller must close the returned reader.
func (s *Store) GetFile(ctx context.Context, b *Bullet) (io.ReadCloser, error) {
	if b.FileRef == "" {
		return nil, &NoFileError{ID: b.ID}
	}

	rc, err := s.blobs.Get(ctx, b.FileRef)
	if err != nil {
		if errors.Is(err, blob.ErrNotExist) {
			return nil, &NoFileError{ID: b.ID}
		}
		return nil, err
	}
	return rc, nil
}

// Delete removes the bullet's metadata entry and, if a file reference is
// set, its blob. Deleting a bullet whose identity no longer exists in the
// collection is a silent no-op on the metadata path.
func (s *Store) Delete(ctx context.Context, b *Bullet) error {
	if err := s.col.Remove(ctx, b.ID); err != nil {
		return err
	}
	if b.FileRef != "" {
		if err := s.blobs.Delete(ctx, b.FileRef); err != nil {
			return err
		}
	}
	s.logger.Debug("bullet deleted", "id", b.ID, "had_file", b.FileRef != "")
	return nil
}

// Count returns the total number of persisted bullets.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.col.Count(ctx)
}

// All returns every bullet in store-defined order.
func (s *Store) All(ctx context.Context) ([]*Bullet, error) {
	return s.find(ctx, FindOptions{})
}

// AllStream streams every bullet in store-defined order. Each call issues a
// fresh query. The channels are closed when the stream completes or errors;
// callers should drain both.
func (s *Store) AllStream(ctx context.Context) (<-chan *Bullet, <-chan error, error) {
	return s.findStream(ctx, FindOptions{})
}

// RemoveAll deletes every bullet, metadata and blob, one record at a time.
// The operation is not atomic: a failure partway leaves the store partially
// cleared.
func (s *Store) RemoveAll(ctx context.Context) error {
	bullets, err := s.All(ctx)
	if err != nil {
		return err
	}
	for _, b := range bullets {
		if err := s.Delete(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns the bullet with the given identity. A malformed identity
// and a well-formed identity with no matching record both fail with
// NotFoundError.
func (s *Store) GetByID(ctx context.Context, id string) (*Bullet, error) {
	doc, err := s.col.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrInvalidID) || errors.Is(err, ErrNoDocument) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	return fromDocument(doc), nil
}

// AllChronological returns every bullet ordered ascending by capture time.
// Ties are broken by store-defined order, stable within a single query.
func (s *Store) AllChronological(ctx context.Context) ([]*Bullet, error) {
	return s.find(ctx, FindOptions{Sort: TimeAscending})
}

// AllChronologicalStream streams every bullet ordered ascending by capture
// time. Each call issues a fresh query.
func (s *Store) AllChronologicalStream(ctx context.Context) (<-chan *Bullet, <-chan error, error) {
	return s.findStream(ctx, FindOptions{Sort: TimeAscending})
}

// Latest returns the bullet with the maximum capture time. It fails with
// NotFoundError when the store is empty.
func (s *Store) Latest(ctx context.Context) (*Bullet, error) {
	bullets, err := s.find(ctx, FindOptions{Sort: TimeDescending, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(bullets) == 0 {
		return nil, &NotFoundError{}
	}
	return bullets[0], nil
}

func (s *Store) find(ctx context.Context, opts FindOptions) ([]*Bullet, error) {
	docs, err := s.col.Find(ctx, opts)
	if err != nil {
		return nil, err
	}
	bullets := make([]*Bullet, 0, len(docs))
	for _, doc := range docs {
		bullets = append(bullets, fromDocument(doc))
	}
	return bullets, nil
}

func (s *Store) findStream(ctx context.Context, opts FindOptions) (<-chan *Bullet, <-chan error, error) {
	docCh, errCh, err := s.col.FindStream(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	bulletCh := make(chan *Bullet)
	go func() {
		defer close(bulletCh)
		for doc := range docCh {
			select {
			case bulletCh <- fromDocument(doc):
			case <-ctx.Done():
				return
			}
		}
	}()

	return bulletCh, errCh, nil
}

// fromDocument reconstructs an in-memory bullet from its stored metadata.
// The payload is not loaded; it stays in the blob store behind FileRef.
func fromDocument(doc *Document) *Bullet {
	b := New(Fields{
		Headers: doc.Headers,
		URI:     doc.URI,
		Method:  doc.Method,
		Time:    doc.Time,
		File:    doc.File,
	})
	b.ID = doc.ID
	return b
}
