package logger

import "context"

type requestIDKey struct{}

// WithRequestID tags the context with the request's correlation ID so logs
// emitted below the HTTP layer (repositories, the gorm bridge) can be tied
// back to the request that caused them.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID returns the correlation ID, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
