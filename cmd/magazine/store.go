package main

import (
	"fmt"

	"ioncannon/magazine/pkg/blob"
	"ioncannon/magazine/pkg/bullet"
	"ioncannon/magazine/pkg/bullet/storage"
	"ioncannon/magazine/pkg/config"
)

// openStore builds a bullet store from the configured collection and blob
// backends. The returned closer shuts both backends down.
func openStore(cfg *config.Config) (*bullet.Store, func() error, error) {
	col, err := openCollection(cfg)
	if err != nil {
		return nil, nil, err
	}

	blobs, err := openBlobStore(cfg)
	if err != nil {
		col.Close()
		return nil, nil, err
	}

	closer := func() error {
		blobErr := blobs.Close()
		if err := col.Close(); err != nil {
			return err
		}
		return blobErr
	}

	return bullet.NewStore(col, blobs), closer, nil
}

func openCollection(cfg *config.Config) (bullet.Collection, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return storage.NewSQLiteCollection(&storage.SQLiteConfig{
			Path:         cfg.Storage.Path,
			MaxOpenConns: cfg.Storage.MaxOpenConns,
			MaxIdleConns: cfg.Storage.MaxIdleConns,
			WALMode:      true,
			BusyTimeout:  cfg.Storage.BusyTimeout.Std(),
		})
	case "memory":
		return storage.NewMemoryCollection(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s (supported: sqlite, memory)", cfg.Storage.Backend)
	}
}

func openBlobStore(cfg *config.Config) (blob.Store, error) {
	switch cfg.Blobs.Backend {
	case "fs":
		return blob.NewFS(&blob.FSConfig{Dir: cfg.Blobs.Dir})
	case "sqlite":
		return blob.NewSQLite(&blob.SQLiteConfig{Path: cfg.Blobs.Path})
	case "memory":
		return blob.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported blob backend: %s (supported: fs, sqlite, memory)", cfg.Blobs.Backend)
	}
}
