package service

import "context"

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID attaches the transport-layer request ID so audit events can be
// correlated with access logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
