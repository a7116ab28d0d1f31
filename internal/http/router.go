// Package httpapi assembles the public router. Handlers stay thin and
// delegate to domain services; transport concerns live here and in the
// shared middleware.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"exhibit/pkg/platform/httputil"
	"exhibit/pkg/platform/middleware/requestid"
	"exhibit/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by every domain handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports backing-store reachability for /healthz.
type HealthChecker func(ctx context.Context) error

// NewRouter wires all public endpoints plus /metrics and /healthz.
func NewRouter(health HealthChecker, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	for _, h := range handlers {
		h.Register(r)
	}

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if health != nil {
			if err := health(req.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
