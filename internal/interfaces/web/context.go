package web

import "context"

type contextKey string

const (
	requestIDContextKey    contextKey = "request_id"
	requestStateContextKey contextKey = "request_state"
)

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

// RequestIDFromContext returns the id assigned by the RequestID middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// requestState is filled in by inner handlers and read back by RequestLogging
// once the request completes.
type requestState struct {
	route string
}

func withRequestState(ctx context.Context, state *requestState) context.Context {
	return context.WithValue(ctx, requestStateContextKey, state)
}

func requestStateFromContext(ctx context.Context) *requestState {
	state, _ := ctx.Value(requestStateContextKey).(*requestState)
	return state
}
