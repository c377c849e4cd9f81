// Package logging provides structured logging helpers built on log/slog.
// Handlers and background workers share one logger shape so operations,
// errors, and HTTP requests stay machine-parseable.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type contextKey string

const loggerKey contextKey = "logger"

// NewLogger creates the application logger. Verbose enables debug level.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler)
}

// WithLogger stores a logger in the context for downstream handlers.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default when none
// was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// LogOperation records a notable application event at info level.
func LogOperation(logger *slog.Logger, operation string, attrs ...slog.Attr) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.LogAttrs(context.Background(), slog.LevelInfo, operation, attrs...)
}

// LogError records a failure with its error attached.
func LogError(logger *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	if logger == nil {
		logger = slog.Default()
	}
	all := make([]slog.Attr, 0, len(attrs)+1)
	if err != nil {
		all = append(all, slog.String("error", err.Error()))
	}
	all = append(all, attrs...)
	logger.LogAttrs(context.Background(), slog.LevelError, msg, all...)
}

// LogHTTPRequest records one served request with its duration in
// milliseconds.
func LogHTTPRequest(logger *slog.Logger, method, path string, status int, durationMs float64, attrs ...slog.Attr) {
	if logger == nil {
		logger = slog.Default()
	}
	all := make([]slog.Attr, 0, len(attrs)+4)
	all = append(all,
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("duration_ms", durationMs),
	)
	all = append(all, attrs...)
	logger.LogAttrs(context.Background(), slog.LevelInfo, "http_request", all...)
}

// SafeCloseWithLogging closes a resource and logs a failure instead of
// returning it, for use in defers.
func SafeCloseWithLogging(c io.Closer, logger *slog.Logger, name string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		LogError(logger, "failed_to_close_resource", err, slog.String("resource", name))
	}
}
