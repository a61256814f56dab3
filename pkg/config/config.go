package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the magazine service.
type Config struct {
	// Storage configures the document collection holding bullet
	// metadata.
	Storage StorageConfig `yaml:"storage"`

	// Blobs configures the payload blob store.
	Blobs BlobConfig `yaml:"blobs"`

	// Clock configures the capture clock.
	Clock ClockConfig `yaml:"clock"`

	// Capture configures the async capture recorder.
	Capture CaptureConfig `yaml:"capture"`

	// Retention configures automatic pruning of old bullets.
	Retention RetentionConfig `yaml:"retention"`

	// Logging configures structured log output.
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig configures the metadata collection backend.
type StorageConfig struct {
	// Backend selects the collection backend: "sqlite" or "memory".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// Path is the database file path for the sqlite backend.
	// Default: "data/bullets.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5s
	BusyTimeout Duration `yaml:"busy_timeout"`
}

// BlobConfig configures the payload blob store backend.
type BlobConfig struct {
	// Backend selects the blob backend: "fs", "sqlite" or "memory".
	// Default: "fs"
	Backend string `yaml:"backend"`

	// Dir is the root directory for the fs backend.
	// Default: "data/blobs"
	Dir string `yaml:"dir"`

	// Path is the database file path for the sqlite backend.
	// Default: "data/blobs.db"
	Path string `yaml:"path"`
}

// ClockConfig configures the capture clock.
type ClockConfig struct {
	// Offset starts the clock already partway through its range, for
	// resuming a capture session.
	// Default: 0
	Offset Duration `yaml:"offset"`
}

// CaptureConfig configures the capture recorder.
type CaptureConfig struct {
	// Disabled turns off capture recording.
	Disabled bool `yaml:"disabled"`

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000
	AsyncBuffer int `yaml:"async_buffer"`

	// WriteTimeout bounds storage writes and the wait for buffer space.
	// Default: 5s
	WriteTimeout Duration `yaml:"write_timeout"`
}

// RetentionConfig configures automatic pruning.
type RetentionConfig struct {
	// MaxAge is the oldest a bullet may be before it is pruned,
	// measured against the capture clock. Zero disables age pruning.
	MaxAge Duration `yaml:"max_age"`

	// MaxRecords caps the number of stored bullets. Zero disables the
	// cap.
	MaxRecords int64 `yaml:"max_records"`

	// Schedule is the cron expression for scheduled pruning. Empty
	// disables the scheduler.
	Schedule string `yaml:"schedule"`
}

// LoggingConfig configures structured log output.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "text"
	Format string `yaml:"format"`
}

// Duration is a time.Duration that unmarshals from YAML duration strings
// like "5s" or "24h".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("duration must be a string like \"5s\": %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
