package logs

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const loggerKey contextKey = "logger"

// WithRequestLogger derives a logger tagged with a fresh request id from the
// default logger and stores it in the request context.
func WithRequestLogger(r *http.Request) context.Context {
	requestId := uuid.New().String()
	logger := slog.Default().With(slog.String("request_id", requestId))
	logger.Info("request", "method", r.Method, "path", r.URL.Path)
	return WithLogger(r.Context(), logger)
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Logger retrieves the logger from context, returns default logger if not found
func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
