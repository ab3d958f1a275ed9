// Package logging builds the process logger and carries request-scoped
// loggers through context.Context.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

type loggerKey struct{}

type requestIDKey struct{}

// New creates a slog.Logger for the given level and format. It does not set
// the global logger.
func New(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext extracts the logger from ctx, falling back to slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}

// WithRequestID stores the request ID in ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request ID from ctx.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger logs service operations with the request ID attached.
type Logger struct {
	requestID string
	log       *slog.Logger
}

// NewLogger creates an operation logger from the request context.
func NewLogger(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID, log: FromContext(ctx)}
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.log.Error("operation failed", "request_id", l.requestID, "operation", operation, "error", err)
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...), "request_id", l.requestID, "operation", operation)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...any) {
	l.log.Info(fmt.Sprintf(format, args...), "request_id", l.requestID, "operation", operation)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...), "request_id", l.requestID, "operation", operation)
}
