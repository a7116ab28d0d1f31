// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Values are set by middleware and consumed by services. Keeping this package
// free of net/http dependencies lets services import only what they need.
//
// Usage in services (read values):
//
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	requestIDKey    struct{}
	requestTimeKey  struct{}
	requestorRefKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyRequestID    = requestIDKey{}
	ContextKeyRequestTime  = requestTimeKey{}
	ContextKeyRequestorRef = requestorRefKey{}
)

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestorRef retrieves the opaque requestor reference forwarded by the
// caller, if any. Identity verification happens upstream; this core only
// records the reference for the audit trail.
func RequestorRef(ctx context.Context) string {
	if ref, ok := ctx.Value(ContextKeyRequestorRef).(string); ok {
		return ref
	}
	return ""
}

// WithRequestorRef injects a requestor reference into the context.
func WithRequestorRef(ctx context.Context, ref string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestorRef, ref)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (for non-HTTP contexts like tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for service unit
// tests that don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
