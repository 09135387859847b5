// Package logging sets up the structured logger used by the command line
// tool.
package logging

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

// TimeFormat is the timestamp layout of log lines.
const TimeFormat = "15:04:05.000"

// New returns a tint-backed logger writing to w. Debug records are dropped
// unless verbose is set.
func New(w io.Writer, verbose, color bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: TimeFormat,
		NoColor:    !color,
	}))
}

// Setup creates a logger with New and installs it as the slog default.
func Setup(w io.Writer, verbose, color bool) *slog.Logger {
	logger := New(w, verbose, color)
	slog.SetDefault(logger)
	return logger
}
