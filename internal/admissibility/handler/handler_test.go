package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exhibit/internal/admissibility"
	"exhibit/internal/audit"
	"exhibit/internal/claims"
	"exhibit/internal/custody"
	"exhibit/internal/document"
	"exhibit/internal/platform/config"
	"exhibit/internal/rules"
	"exhibit/internal/sourceauth"
	"exhibit/pkg/testutil"
)

type fixture struct {
	router    chi.Router
	documents *document.InMemoryStore
	ruleStore *rules.InMemoryStore
	sources   *sourceauth.InMemoryStore
	catalog   *claims.InMemoryCatalogStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		documents: document.NewInMemoryStore(),
		ruleStore: rules.NewInMemoryStore(),
		sources:   sourceauth.NewInMemoryStore(),
		catalog:   claims.NewInMemoryCatalogStore(),
	}

	engine := admissibility.NewEngine(
		f.documents,
		rules.NewRegistry(f.ruleStore, time.Minute),
		admissibility.NewEvaluatorRegistry(),
		custody.NewLedger(custody.NewInMemoryStore(), log),
		sourceauth.NewService(f.sources),
		claims.NewAnalyzer(f.catalog, claims.NewInMemoryAnalysisStore(), f.documents, claims.NewTokenMatcher(), log),
		audit.NewInMemoryStore(),
		config.FailurePolicyWarn,
		log,
		nil,
	)

	f.router = chi.NewRouter()
	New(engine, log).Register(f.router)
	return f
}

func (f *fixture) post(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCheckRequiresDocumentID(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/admissibility/check", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckUnknownDocumentIsRejectedNotAnError(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/admissibility/check", map[string]string{"document_id": "ghost"})
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Status          string `json:"status"`
		RejectionReason string `json:"rejection_reason"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "rejected", result.Status)
	assert.Equal(t, "Document not found", result.RejectionReason)
}

func TestCheckApprovedDocument(t *testing.T) {
	f := newFixture(t)
	f.documents.Put(&document.Document{
		ID:       "doc-1",
		Filename: "contract.pdf",
		Metadata: document.Metadata{ContentHash: "sha256:x", OriginalFilename: "contract.pdf", SourceID: "src-1"},
	})

	rec := f.post(t, "/admissibility/check", map[string]string{
		"document_id":   "doc-1",
		"requestor_ref": "analysis-service",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Status        string       `json:"status"`
		ApprovalScope string       `json:"approval_scope"`
		RequestorRef  string       `json:"requestor_ref"`
		Flags         []audit.Flag `json:"flags"`
		Summary       string       `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "approved", result.Status)
	assert.NotEmpty(t, result.ApprovalScope)
	assert.Equal(t, "analysis-service", result.RequestorRef)
	assert.NotEmpty(t, result.Flags)
	assert.Equal(t, result.ApprovalScope, result.Summary)
}

func TestCheckRequestorRefFallsBackToContext(t *testing.T) {
	f := newFixture(t)
	f.documents.Put(&document.Document{ID: "doc-1", Filename: "contract.pdf"})

	body, err := json.Marshal(map[string]string{"document_id": "doc-1"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/admissibility/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithRequestorRef(req, "gateway-client-7")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		RequestorRef string `json:"requestor_ref"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "gateway-client-7", result.RequestorRef)
}

func TestCheckUnknownClaimTypeIsNotFound(t *testing.T) {
	f := newFixture(t)
	f.documents.Put(&document.Document{ID: "doc-1", Filename: "contract.pdf"})

	rec := f.post(t, "/admissibility/check", map[string]string{
		"document_id":   "doc-1",
		"claim_type_id": "no-such-claim",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckMalformedBody(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/admissibility/check", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRequestsReturnsHistory(t *testing.T) {
	f := newFixture(t)
	f.documents.Put(&document.Document{ID: "doc-1", Filename: "contract.pdf"})

	for range 2 {
		rec := f.post(t, "/admissibility/check", map[string]string{"document_id": "doc-1"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := f.get(t, "/admissibility/requests?documentId=doc-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var records []audit.Request
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&records))
	assert.Len(t, records, 2)
}

func TestListRequestsEmptyIsAnEmptyArray(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/admissibility/requests")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListRulesAndConstitution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ruleStore.InsertRule(ctx, rules.AdmissibilityRule{
		Code: rules.CodeNoScreenshots, Text: "Screenshots are not admissible", FailureAction: rules.FailureReject, Active: true,
	}))
	require.NoError(t, f.ruleStore.InsertArticle(ctx, rules.ConstitutionArticle{
		Number: 1, Title: "Original Evidence", Text: "See NO_SCREENSHOTS.", Active: true,
	}))

	rec := f.get(t, "/admissibility-rules")
	require.Equal(t, http.StatusOK, rec.Code)
	var active []rules.AdmissibilityRule
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&active))
	require.Len(t, active, 1)
	assert.Equal(t, rules.CodeNoScreenshots, active[0].Code)

	rec = f.get(t, "/constitution")
	require.Equal(t, http.StatusOK, rec.Code)
	var articles []rules.ConstitutionArticle
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&articles))
	assert.Len(t, articles, 1)
}
