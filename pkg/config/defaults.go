package config

import "time"

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in default values for any unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "sqlite"
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "data/bullets.db"
	}
	if cfg.Storage.MaxOpenConns == 0 {
		cfg.Storage.MaxOpenConns = 10
	}
	if cfg.Storage.MaxIdleConns == 0 {
		cfg.Storage.MaxIdleConns = 5
	}
	if cfg.Storage.BusyTimeout == 0 {
		cfg.Storage.BusyTimeout = Duration(5 * time.Second)
	}

	if cfg.Blobs.Backend == "" {
		cfg.Blobs.Backend = "fs"
	}
	if cfg.Blobs.Dir == "" {
		cfg.Blobs.Dir = "data/blobs"
	}
	if cfg.Blobs.Path == "" {
		cfg.Blobs.Path = "data/blobs.db"
	}

	if cfg.Capture.AsyncBuffer == 0 {
		cfg.Capture.AsyncBuffer = 1000
	}
	if cfg.Capture.WriteTimeout == 0 {
		cfg.Capture.WriteTimeout = Duration(5 * time.Second)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}
