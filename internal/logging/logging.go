// Package logging configures the process-wide slog logger. Components
// receive children via logger.With("component", ...).
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Setup creates a text logger writing to w at the given level, sets
// it as the default and returns it. The level accepts "debug",
// "info", "warn", "error" (case-insensitive); anything else means
// info.
func Setup(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
