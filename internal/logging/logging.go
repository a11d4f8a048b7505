// Package logging configures the process-wide slog logger for the
// register server and its companion tools.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup builds a text-handler logger at the requested level, installs it
// as the slog default, and returns it. The level comes from
// OPVANG_LOG_LEVEL and accepts debug, info, warn or error
// (case-insensitive); anything else falls back to info.
func Setup(level string) *slog.Logger {
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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
	return logger
}
