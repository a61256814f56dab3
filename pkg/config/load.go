package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a YAML configuration file. Defaults are
// applied for any unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides overlays MAGAZINE_* environment variables on top of
// the file configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MAGAZINE_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("MAGAZINE_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("MAGAZINE_BLOBS_BACKEND"); v != "" {
		cfg.Blobs.Backend = v
	}
	if v := os.Getenv("MAGAZINE_BLOBS_DIR"); v != "" {
		cfg.Blobs.Dir = v
	}
	if v := os.Getenv("MAGAZINE_BLOBS_PATH"); v != "" {
		cfg.Blobs.Path = v
	}
	if v := os.Getenv("MAGAZINE_CAPTURE_DISABLED"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.Capture.Disabled = parsed
		}
	}
	if v := os.Getenv("MAGAZINE_RETENTION_MAX_AGE"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Retention.MaxAge = Duration(parsed)
		}
	}
	if v := os.Getenv("MAGAZINE_RETENTION_MAX_RECORDS"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Retention.MaxRecords = parsed
		}
	}
	if v := os.Getenv("MAGAZINE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MAGAZINE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
