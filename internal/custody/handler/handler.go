package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"exhibit/internal/custody"
	"exhibit/pkg/platform/httputil"
)

// Service defines the interface for custody ledger operations.
type Service interface {
	AddEntry(ctx context.Context, entry *custody.Entry) (*custody.Entry, error)
	GetChain(ctx context.Context, documentID string) ([]custody.Entry, error)
}

// Handler wires chain-of-custody endpoints to the ledger.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts custody endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/chain-of-custody", h.HandleAddEntry)
	r.Get("/chain-of-custody/{documentID}", h.HandleGetChain)
}

// AddEntryRequest is the wire form of a custody entry.
type AddEntryRequest struct {
	DocumentID         string    `json:"document_id"`
	Custodian          string    `json:"custodian"`
	Action             string    `json:"action"`
	CustodyDate        time.Time `json:"custody_date"`
	Location           string    `json:"location,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	VerificationMethod string    `json:"verification_method,omitempty"`
}

// HandleAddEntry handles POST /chain-of-custody.
func (h *Handler) HandleAddEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[AddEntryRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entry, err := h.service.AddEntry(ctx, &custody.Entry{
		DocumentID:         req.DocumentID,
		Custodian:          req.Custodian,
		Action:             custody.Action(req.Action),
		CustodyDate:        req.CustodyDate,
		Location:           req.Location,
		Notes:              req.Notes,
		VerificationMethod: req.VerificationMethod,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, entry)
}

// HandleGetChain handles GET /chain-of-custody/{documentID}. An unknown
// document yields an empty chain, not an error.
func (h *Handler) HandleGetChain(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")

	chain, err := h.service.GetChain(r.Context(), documentID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "custody chain lookup failed",
			"document_id", documentID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if chain == nil {
		chain = []custody.Entry{}
	}
	httputil.WriteJSON(w, http.StatusOK, chain)
}
