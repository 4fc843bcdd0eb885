package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxPainterID ContextKey = "ctx_painter_id"
)

// HeaderRequestID is the request id header echoed back on every response
const HeaderRequestID = "X-Request-ID"

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetPainterID(ctx context.Context) string {
	if painterID, ok := ctx.Value(CtxPainterID).(string); ok {
		return painterID
	}
	return ""
}

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

func SetPainterID(ctx context.Context, painterID string) context.Context {
	return context.WithValue(ctx, CtxPainterID, painterID)
}
