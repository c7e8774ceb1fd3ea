package client

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey = contextKey("request-id")

// WithRequestID returns a context carrying an explicit request ID that
// outgoing requests will propagate as X-Request-ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFrom extracts the request ID from the context.
// Returns empty string if not found.
func RequestIDFrom(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}
	return ""
}

func newRequestID() string {
	return uuid.New().String()
}
