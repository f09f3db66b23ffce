package internal

import (
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slog"
)

// ParseLevel maps a config level name to a slog level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogging installs a text handler on stdout as the default logger.
func InitLogging(level string) *slog.Logger {
	return InitLoggingTo(os.Stdout, level)
}

// InitLoggingTo is InitLogging with an explicit writer.
func InitLoggingTo(w io.Writer, level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
	slog.SetDefault(logger)
	return logger
}
