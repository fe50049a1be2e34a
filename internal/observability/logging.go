// Package observability provides structured logging for the client and server.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID keys the per-request correlation ID in a context.
const CorrelationID LogContextKey = "correlation_id"

// GenerateCorrelationID creates a new unique correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

// HTTPLogger provides structured logging for outbound HTTP requests.
type HTTPLogger struct {
	logger *Logger
}

// NewHTTPLogger creates an HTTPLogger backed by the global logger.
func NewHTTPLogger() *HTTPLogger {
	return &HTTPLogger{logger: GlobalLogger}
}

// LogRequest logs an outbound request before it is issued.
func (l *HTTPLogger) LogRequest(ctx context.Context, method, url string) {
	l.logger.InfoContext(ctx, "api request",
		slog.String("method", method),
		slog.String("url", url),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogResponse logs the status of a completed request.
func (l *HTTPLogger) LogResponse(ctx context.Context, method, url string, status int) {
	l.logger.InfoContext(ctx, "api response",
		slog.String("method", method),
		slog.String("url", url),
		slog.Int("status", status),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogError logs a transport-level failure.
func (l *HTTPLogger) LogError(ctx context.Context, method, url string, err error) {
	l.logger.ErrorContext(ctx, "api request failed",
		slog.String("method", method),
		slog.String("url", url),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}
