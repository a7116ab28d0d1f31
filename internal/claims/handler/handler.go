package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"exhibit/internal/claims"
	dErrors "exhibit/pkg/domain-errors"
	"exhibit/pkg/platform/httputil"
)

// Service defines the interface for claim catalog and analysis operations.
type Service interface {
	ListClaimTypes(ctx context.Context) ([]claims.ClaimType, error)
	ListRequirements(ctx context.Context, claimTypeID string) ([]claims.SourceRequirement, error)
	AnalyzeClaim(ctx context.Context, documentID, claimTypeID, claimText string) (*claims.Analysis, error)
}

// Handler wires claim endpoints to the analyzer.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts claim endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/claim-types", h.HandleListClaimTypes)
	r.Get("/claim-types/{claimTypeID}/source-requirements", h.HandleListRequirements)
	r.Post("/claims/analyze", h.HandleAnalyze)
}

// HandleListClaimTypes handles GET /claim-types.
func (h *Handler) HandleListClaimTypes(w http.ResponseWriter, r *http.Request) {
	claimTypes, err := h.service.ListClaimTypes(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if claimTypes == nil {
		claimTypes = []claims.ClaimType{}
	}
	httputil.WriteJSON(w, http.StatusOK, claimTypes)
}

// HandleListRequirements handles GET /claim-types/{claimTypeID}/source-requirements.
func (h *Handler) HandleListRequirements(w http.ResponseWriter, r *http.Request) {
	claimTypeID := chi.URLParam(r, "claimTypeID")

	requirements, err := h.service.ListRequirements(r.Context(), claimTypeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if requirements == nil {
		requirements = []claims.SourceRequirement{}
	}
	httputil.WriteJSON(w, http.StatusOK, requirements)
}

// AnalyzeRequest is the wire form of a claim analysis request.
type AnalyzeRequest struct {
	DocumentID  string `json:"document_id"`
	ClaimTypeID string `json:"claim_type_id"`
	ClaimText   string `json:"claim_text,omitempty"`
}

// HandleAnalyze handles POST /claims/analyze.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[AnalyzeRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.DocumentID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "document_id is required"))
		return
	}
	if req.ClaimTypeID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "claim_type_id is required"))
		return
	}

	analysis, err := h.service.AnalyzeClaim(ctx, req.DocumentID, req.ClaimTypeID, req.ClaimText)
	if err != nil {
		h.logger.ErrorContext(ctx, "claim analysis failed",
			"document_id", req.DocumentID,
			"claim_type_id", req.ClaimTypeID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, analysis)
}
