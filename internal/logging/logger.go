// Package logging configures the structured logger used across the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates a slog.Logger writing to w with the specified level and
// format. format can be "json" or "text" (default is text, since the
// primary consumer is a terminal).
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Default returns a text logger on stderr at info level.
func Default() *slog.Logger {
	return New(os.Stderr, slog.LevelInfo, "text")
}

// ParseLevel converts a string log level to slog.Level.
// Valid values: "debug", "info", "warn", "error".
// Returns slog.LevelInfo for invalid values.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
