package config

import "fmt"

// Validate checks the configuration for invalid or inconsistent values.
func Validate(cfg *Config) error {
	switch cfg.Storage.Backend {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("invalid storage backend %q (must be sqlite or memory)", cfg.Storage.Backend)
	}
	if cfg.Storage.Backend == "sqlite" && cfg.Storage.Path == "" {
		return fmt.Errorf("storage.path is required for the sqlite backend")
	}
	if cfg.Storage.MaxOpenConns < 0 {
		return fmt.Errorf("storage.max_open_conns must not be negative")
	}
	if cfg.Storage.MaxIdleConns < 0 {
		return fmt.Errorf("storage.max_idle_conns must not be negative")
	}

	switch cfg.Blobs.Backend {
	case "fs", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid blob backend %q (must be fs, sqlite or memory)", cfg.Blobs.Backend)
	}
	if cfg.Blobs.Backend == "fs" && cfg.Blobs.Dir == "" {
		return fmt.Errorf("blobs.dir is required for the fs backend")
	}
	if cfg.Blobs.Backend == "sqlite" && cfg.Blobs.Path == "" {
		return fmt.Errorf("blobs.path is required for the sqlite backend")
	}

	if cfg.Clock.Offset < 0 {
		return fmt.Errorf("clock.offset must not be negative")
	}

	if cfg.Capture.AsyncBuffer < 1 {
		return fmt.Errorf("capture.async_buffer must be at least 1")
	}
	if cfg.Capture.WriteTimeout <= 0 {
		return fmt.Errorf("capture.write_timeout must be positive")
	}

	if cfg.Retention.MaxAge < 0 {
		return fmt.Errorf("retention.max_age must not be negative")
	}
	if cfg.Retention.MaxRecords < 0 {
		return fmt.Errorf("retention.max_records must not be negative")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", cfg.Logging.Format)
	}

	return nil
}
