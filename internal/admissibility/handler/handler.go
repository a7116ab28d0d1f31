package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"exhibit/internal/admissibility"
	"exhibit/internal/audit"
	"exhibit/internal/rules"
	dErrors "exhibit/pkg/domain-errors"
	"exhibit/pkg/platform/httputil"
	"exhibit/pkg/requestcontext"
)

// Service defines the interface for admissibility operations.
type Service interface {
	CheckAdmissibility(ctx context.Context, req admissibility.CheckRequest) (*admissibility.Result, error)
	ListRequests(ctx context.Context, documentID string, limit int) ([]audit.Request, error)
	ListRules(ctx context.Context) ([]rules.AdmissibilityRule, error)
	ListConstitution(ctx context.Context) ([]rules.ConstitutionArticle, error)
}

// Handler wires admissibility endpoints to the engine.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts admissibility endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admissibility/check", h.HandleCheck)
	r.Get("/admissibility/requests", h.HandleListRequests)
	r.Get("/admissibility-rules", h.HandleListRules)
	r.Get("/constitution", h.HandleListConstitution)
}

// CheckRequest is the wire form of an admissibility check.
type CheckRequest struct {
	DocumentID   string `json:"document_id"`
	ClaimTypeID  string `json:"claim_type_id,omitempty"`
	RequestorRef string `json:"requestor_ref,omitempty"`
}

// HandleCheck handles POST /admissibility/check. An unknown document is a
// business outcome, returned as 200 with a rejected status.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, err := httputil.Decode[CheckRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.DocumentID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "document_id is required"))
		return
	}

	requestorRef := req.RequestorRef
	if requestorRef == "" {
		requestorRef = requestcontext.RequestorRef(ctx)
	}

	result, err := h.service.CheckAdmissibility(ctx, admissibility.CheckRequest{
		DocumentID:   req.DocumentID,
		ClaimTypeID:  req.ClaimTypeID,
		RequestorRef: requestorRef,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "admissibility check failed",
			"request_id", requestcontext.RequestID(ctx),
			"document_id", req.DocumentID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "admissibility check served",
		"request_id", requestcontext.RequestID(ctx),
		"document_id", req.DocumentID,
		"status", result.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleListRequests handles GET /admissibility/requests?documentId=&limit=.
func (h *Handler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	documentID := r.URL.Query().Get("documentId")
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.service.ListRequests(r.Context(), documentID, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []audit.Request{}
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}

// HandleListRules handles GET /admissibility-rules.
func (h *Handler) HandleListRules(w http.ResponseWriter, r *http.Request) {
	active, err := h.service.ListRules(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if active == nil {
		active = []rules.AdmissibilityRule{}
	}
	httputil.WriteJSON(w, http.StatusOK, active)
}

// HandleListConstitution handles GET /constitution.
func (h *Handler) HandleListConstitution(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.ListConstitution(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if articles == nil {
		articles = []rules.ConstitutionArticle{}
	}
	httputil.WriteJSON(w, http.StatusOK, articles)
}
