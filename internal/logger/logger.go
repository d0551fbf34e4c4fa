package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

var logger *zap.Logger

func init() {
	logger = build(os.Getenv("ENV"))
}

// Init rebuilds the global logger for env. Call it once the configuration,
// including any .env file, has been loaded.
func Init(env string) {
	logger = build(env)
}

func build(env string) *zap.Logger {
	var l *zap.Logger
	if os.Getenv("DEBUG") == "true" || env == "development" {
		l, _ = zap.NewDevelopment()
	} else {
		l, _ = zap.NewProduction()
	}
	return l
}

// WithRequestID stores the request ID so WithCtx can attach it to log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func WithCtx(ctx context.Context) *zap.Logger {
	if id := RequestID(ctx); id != "" {
		return logger.With(zap.String("request_id", id))
	}
	return logger
}

func With(fields ...zap.Field) *zap.Logger {
	return logger.With(fields...)
}

func Sync() {
	_ = logger.Sync()
}
