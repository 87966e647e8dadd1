// Package observability provides the structured logging surface shared by
// the toolkit's commands.
package observability

import (
	"log/slog"
	"os"

	"github.com/jgehrcke/covid-19-analysis/internal/config"
)

// NewLogger builds an slog.Logger writing to stderr, honoring the configured
// level and format. Logs go to stderr so stdout stays clean for the
// command's own output (suggestion lists, report text).
func NewLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
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
