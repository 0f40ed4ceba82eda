// Package logging configures log/slog for the auditlens binaries.
//
// Every binary logs to stderr: stdout carries CLI output and, for the MCP
// server, the stdio transport.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type opKey struct{}

type operation struct {
	name string
	id   string
}

// Setup installs the default slog logger.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string log level to slog.Level
func ParseLevel(level string) slog.Level {
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

// WithOperation tags ctx with an operation name and a short random id so
// that all log lines of one ingest or reconcile can be correlated.
func WithOperation(ctx context.Context, name string) context.Context {
	id := uuid.NewString()[:8]
	return context.WithValue(ctx, opKey{}, operation{name: name, id: id})
}

// FromContext returns the default logger enriched with the operation
// stored in ctx, if any.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if op, ok := ctx.Value(opKey{}).(operation); ok {
		logger = logger.With("op", op.name, "op_id", op.id)
	}

	return logger
}

// WithFields returns a logger with additional structured fields.
//
// Usage:
//
//	logger := logging.WithFields(ctx, "group_id", id)
//	logger.Info("reconcile started")
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
