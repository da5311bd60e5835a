package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the diagnostics logger. Reports go to stdout, so diagnostics
// stay on the writer passed here (stderr in the CLI).
// LEETER_LOG_FORMAT=json switches to the JSON handler.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("LEETER_LOG_FORMAT"), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init installs a logger as the slog default and returns it.
func Init(w io.Writer, verbose bool) *slog.Logger {
	logger := New(w, verbose)
	slog.SetDefault(logger)
	return logger
}

// WithSource returns a logger scoped to one journal source file.
func WithSource(logger *slog.Logger, source string) *slog.Logger {
	return logger.With("source", source)
}

// WithRun returns a logger scoped to one export run.
func WithRun(logger *slog.Logger, runID, project string) *slog.Logger {
	return logger.With(
		"run_id", runID,
		"project", project,
	)
}
