// Package requestid assigns each request a correlation ID, honoring an
// inbound X-Request-ID header when the caller supplies one.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"exhibit/pkg/requestcontext"
)

// Header is the correlation header read from requests and echoed on responses.
const Header = "X-Request-ID"

// Middleware ensures every request carries a request ID in its context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(Header)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(Header, reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
