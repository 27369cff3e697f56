package logging

import (
	"context"
	"io"
	"log/slog"
	"time"
)

const (
	// FieldComponent is the standardized key for component names.
	FieldComponent = "component"
	// FieldConnID is the standardized key for display connection identifiers.
	FieldConnID = "conn_id"
	// FieldBagID is the standardized key for catalog entry identifiers.
	FieldBagID = "bag_id"
	// FieldTitle is the standardized key for observed product titles.
	FieldTitle = "title"
	// FieldScore is the standardized key for similarity scores.
	FieldScore = "score"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 128}))
}

// WithComponent tags a logger with a component name, creating a nop logger
// when nil is passed.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

type contextKey struct{}

// ContextWithConnID stores a connection id for handlers further down the call
// chain.
func ContextWithConnID(ctx context.Context, connID string) context.Context {
	return context.WithValue(ctx, contextKey{}, connID)
}

// ConnIDFromContext extracts a connection id stored with ContextWithConnID.
func ConnIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok
}

// WithContext returns a logger augmented with the connection id carried by
// the context, when present.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	if id, ok := ConnIDFromContext(ctx); ok {
		return logger.With(String(FieldConnID, id))
	}
	return logger
}
