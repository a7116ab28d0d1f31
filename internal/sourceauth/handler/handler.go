package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"exhibit/internal/sourceauth"
	"exhibit/pkg/platform/httputil"
)

// Service defines the interface for approved-source catalog reads.
type Service interface {
	List(ctx context.Context) ([]sourceauth.ApprovedSource, error)
}

// Handler wires the approved-source catalog endpoint.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the catalog endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/approved-sources", h.HandleList)
}

// HandleList handles GET /approved-sources.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	sources, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if sources == nil {
		sources = []sourceauth.ApprovedSource{}
	}
	httputil.WriteJSON(w, http.StatusOK, sources)
}
