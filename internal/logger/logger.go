package logger

import (
	"log/slog"
	"os"
)

// New builds the process logger. JSON in prod so the collector can index
// fields; human-readable text everywhere else. Every record carries the
// app name so shared log streams stay filterable.
func New(env string) *slog.Logger {
	level := slog.LevelDebug
	if env == "prod" {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h).With("app", "ncfo")
}
