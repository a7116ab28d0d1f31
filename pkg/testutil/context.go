// Package testutil provides common test utilities for handler and
// integration tests.
package testutil

import (
	"net/http"
	"time"

	"exhibit/pkg/requestcontext"
)

// WithRequestorRef injects a requestor reference into the request context,
// simulating what the upstream gateway forwards for attributed calls.
func WithRequestorRef(req *http.Request, ref string) *http.Request {
	return req.WithContext(requestcontext.WithRequestorRef(req.Context(), ref))
}

// WithRequestTime pins the request-scoped time, so handlers under test
// produce deterministic timestamps without the middleware chain.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithRequestID injects a request ID into the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
