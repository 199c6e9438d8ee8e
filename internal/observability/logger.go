package observability

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey string

const (
	ctxKeyNegotiationID ctxKey = "negotiation_id"
)

// basic global logger, JSON to stdout.
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func Logger() *slog.Logger {
	return logger
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return logger.With(kv...)
}

// WithNegotiationID stores a negotiation_id in the context.
func WithNegotiationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyNegotiationID, id)
}

// LoggerFromContext adds negotiation_id if present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	id, _ := ctx.Value(ctxKeyNegotiationID).(string)
	if id == "" {
		return logger
	}
	return logger.With("negotiation_id", id)
}
