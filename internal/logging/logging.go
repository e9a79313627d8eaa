package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"yamdb/internal/config"
)

// New builds the process logger from LOG_LEVEL / LOG_FORMAT and installs it
// as the slog default.
func New(cfg *config.Config) *slog.Logger {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With("service", "yamdb-api")
	slog.SetDefault(logger)
	return logger
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
