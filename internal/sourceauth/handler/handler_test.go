package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exhibit/internal/sourceauth"
)

func TestListApprovedSources(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := sourceauth.NewInMemoryStore()
	require.NoError(t, store.Insert(context.Background(), sourceauth.ApprovedSource{
		SourceType: "court_filing", Category: sourceauth.CategoryPrimary,
	}))

	router := chi.NewRouter()
	New(sourceauth.NewService(store), log).Register(router)

	req := httptest.NewRequest(http.MethodGet, "/approved-sources", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var sources []sourceauth.ApprovedSource
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sources))
	require.Len(t, sources, 1)
	assert.Equal(t, sourceauth.CategoryPrimary, sources[0].Category)
}

func TestEmptyCatalogIsAnEmptyArray(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chi.NewRouter()
	New(sourceauth.NewService(sourceauth.NewInMemoryStore()), log).Register(router)

	req := httptest.NewRequest(http.MethodGet, "/approved-sources", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
