// Package requestctx carries the per-request correlation id through
// context.Context so stores and the audit trail can stamp it without a
// transport dependency.
package requestctx

import "context"

type contextKey struct{}

var requestIDKey contextKey

// WithRequestID attaches the correlation id to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the correlation id, or "" when the context did not
// pass through the request-id middleware.
func GetRequestID(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}
