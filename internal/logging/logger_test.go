package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFallbackWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: slog.LevelInfo, Fallback: &buf, Component: "cli"})
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("loaded fixtures", "metrics", 12)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("debug record should be filtered at info level")
	}
	for _, want := range []string{"loaded fixtures", "metrics=12", "component=cli"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "spendr.log")
	logger, closeFn, err := New(Options{Level: slog.LevelDebug, File: path})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("to file")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Fatalf("log file missing record: %s", data)
	}
}

func TestNewDiscard(t *testing.T) {
	logger, closeFn, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	logger.Error("nowhere")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}
}

func TestNewBadFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := New(Options{File: filepath.Join(blocker, "x.log")}); err == nil {
		t.Fatal("expected error when log dir is a file")
	}
}
