package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Info("capture started", "backend", "sqlite")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "capture started" || entry["backend"] != "sqlite" {
		t.Errorf("unexpected log entry: %v", entry)
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "debug", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Debug("pruning", "deleted", 3)

	out := buf.String()
	if !strings.Contains(out, "pruning") || !strings.Contains(out, "deleted=3") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info message written at warn level: %q", buf.String())
	}

	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Error("warn message suppressed at warn level")
	}
}

func TestNew_Defaults(t *testing.T) {
	logger, err := New(Config{})
	if err != nil {
		t.Fatalf("New() failed with empty config: %v", err)
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("default level should enable info")
	}
}

func TestNew_InvalidValues(t *testing.T) {
	if _, err := New(Config{Level: "verbose"}); err == nil {
		t.Error("New() succeeded with an invalid level")
	}
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Error("New() succeeded with an invalid format")
	}
}
