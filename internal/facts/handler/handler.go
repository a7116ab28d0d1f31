package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"exhibit/internal/facts"
	"exhibit/pkg/platform/httputil"
)

// Service defines the interface for fact ledger operations.
type Service interface {
	AddFact(ctx context.Context, fact *facts.StatementOfFact) (*facts.StatementOfFact, error)
	GetStatementOfFacts(ctx context.Context, caseID string) (*facts.Statement, error)
}

// Handler wires statement-of-facts endpoints to the ledger.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts fact endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/facts", h.HandleAddFact)
	r.Get("/facts", h.HandleGetStatement)
}

// AddFactRequest is the wire form of a statement of fact.
type AddFactRequest struct {
	CaseID           string     `json:"case_id,omitempty"`
	FactNumber       int        `json:"fact_number,omitempty"`
	FactDate         *time.Time `json:"fact_date,omitempty"`
	FactText         string     `json:"fact_text"`
	ExhibitReference string     `json:"exhibit_reference"`
	DocumentID       string     `json:"document_id,omitempty"`
	SourceQuote      string     `json:"source_quote,omitempty"`
}

// HandleAddFact handles POST /facts. The response carries the assigned ID
// and the insertion-time conflict flag.
func (h *Handler) HandleAddFact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[AddFactRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	fact, err := h.service.AddFact(ctx, &facts.StatementOfFact{
		CaseID:           req.CaseID,
		FactNumber:       req.FactNumber,
		FactDate:         req.FactDate,
		FactText:         req.FactText,
		ExhibitReference: req.ExhibitReference,
		DocumentID:       req.DocumentID,
		SourceQuote:      req.SourceQuote,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, fact)
}

// HandleGetStatement handles GET /facts?caseId=.
func (h *Handler) HandleGetStatement(w http.ResponseWriter, r *http.Request) {
	caseID := r.URL.Query().Get("caseId")

	statement, err := h.service.GetStatementOfFacts(r.Context(), caseID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "statement of facts lookup failed",
			"case_id", caseID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statement)
}
