package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FSConfig contains configuration for the filesystem blob store.
type FSConfig struct {
	// Dir is the root directory for stored objects.
	Dir string
}

// FS implements Store on the local filesystem. Each object is a single
// file named by its reference, fanned out into subdirectories by the first
// two characters of the reference to keep directory sizes bounded.
type FS struct {
	dir    string
	logger *slog.Logger
}

// NewFS creates a filesystem blob store rooted at config.Dir, creating the
// directory if needed.
func NewFS(config *FSConfig) (*FS, error) {
	if config == nil || config.Dir == "" {
		return nil, fmt.Errorf("blob: fs store requires a directory")
	}

	if err := os.MkdirAll(config.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create root directory: %w", err)
	}

	logger := slog.Default().With("component", "blob.fs")
	logger.Info("filesystem blob store initialized", "dir", config.Dir)

	return &FS{dir: config.Dir, logger: logger}, nil
}

// path maps a reference to its file location.
func (s *FS) path(ref string) string {
	if len(ref) < 2 {
		return filepath.Join(s.dir, ref)
	}
	return filepath.Join(s.dir, ref[:2], ref)
}

// Put writes the object under a freshly generated reference. The write goes
// through a temporary file and a rename so a crash never leaves a partial
// object behind.
func (s *FS) Put(ctx context.Context, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ref := uuid.NewString()
	target := s.path(ref)

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("blob: create fan-out directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".put-*")
	if err != nil {
		return "", fmt.Errorf("blob: create temp file: %w", err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("blob: write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("blob: close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("blob: publish object: %w", err)
	}

	sum := sha256.Sum256(content)
	s.logger.Debug("object stored",
		"ref", ref,
		"size_bytes", len(content),
		"sha256", hex.EncodeToString(sum[:]),
	)

	return ref, nil
}

// Get opens the object for reading.
func (s *FS) Get(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrNotExist, ref)
		}
		return nil, fmt.Errorf("blob: open object %q: %w", ref, err)
	}
	return f, nil
}

// Exists reports whether the object file is present.
func (s *FS) Exists(ctx context.Context, ref string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(s.path(ref))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("blob: stat object %q: %w", ref, err)
}

// Delete removes the object file. A missing object is a no-op.
func (s *FS) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(s.path(ref))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("blob: remove object %q: %w", ref, err)
	}

	// Best-effort cleanup of an emptied fan-out directory. Remove fails
	// while the directory still holds objects, which is fine.
	if dir := filepath.Dir(s.path(ref)); dir != s.dir {
		os.Remove(dir)
	}

	return nil
}

// Close is a no-op for the filesystem store.
func (s *FS) Close() error {
	return nil
}
