// Package logging builds the structured logger shared by vcpctl's commands.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/roach88/vcpctl/internal/config"
)

// New creates a logger for cfg. A non-nil w replaces the configured
// output, which tests and the CLI use to capture log lines.
//
// Every record carries service=vcpctl and the given version.
func New(cfg config.LoggingConfig, version string, w io.Writer) *slog.Logger {
	output := w
	if output == nil {
		switch strings.ToLower(cfg.Output) {
		case "stdout":
			output = os.Stdout
		default:
			output = os.Stderr
		}
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", "vcpctl"),
		slog.String("version", version),
	})
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// parseLevel converts a level name to slog.Level, defaulting to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
