package logging

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

const correlationIDField = "correlation_id"

// NewCorrelationID returns a short random id for tying log lines of one
// user action together.
func NewCorrelationID() string {
	return uuid.New().String()[:8]
}

// WithCorrelationID returns a copy of ctx carrying id
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// CorrelationID returns the id stored in ctx, or ""
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
