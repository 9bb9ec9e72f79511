package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "writer.log")
	logger, closeLog, err := newLogger(path, true)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Debug("job started", "kind", "generate")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "kind=generate") {
		t.Fatalf("log missing entry: %s", data)
	}
}

func TestNewLoggerDiscardsWithoutPath(t *testing.T) {
	logger, closeLog, err := newLogger("", false)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	defer closeLog()
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug should be disabled by default")
	}
}
