package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options controls where and how much a logger writes.
type Options struct {
	Level slog.Level
	// File, when set, receives the log in append mode.
	File string
	// Fallback is used when File is empty. Nil discards output, which is what
	// the TUI wants since stdout belongs to the alt screen.
	Fallback io.Writer
	// Component is attached to every record.
	Component string
}

// New builds a text slog.Logger. The returned close func releases the log
// file, if one was opened, and is always safe to call.
func New(opts Options) (*slog.Logger, func() error, error) {
	w := opts.Fallback
	closeFn := func() error { return nil }

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, closeFn, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closeFn, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}
	if w == nil {
		w = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: opts.Level}))
	if opts.Component != "" {
		logger = logger.With("component", opts.Component)
	}
	return logger, closeFn, nil
}
