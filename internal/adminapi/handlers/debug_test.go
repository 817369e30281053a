package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gurted/gurtd/internal/adminapi/handlers"
	"github.com/gurted/gurtd/internal/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexSearchMissingQuery(t *testing.T) {
	h := handlers.New(newTestServices(t), nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/debug/index", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIndexSearchReturnsHits(t *testing.T) {
	svc := newTestServices(t)
	require.NoError(t, svc.Index.Add(index.Document{
		URL: "gurt://example.gurt/", Domain: "example.gurt",
		Title: "Example", Content: "widgets and gadgets",
	}))
	require.NoError(t, svc.Index.Commit())
	require.NoError(t, svc.Index.Refresh())

	h := handlers.New(svc, nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/debug/index?q=widgets", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "example.gurt")
}

func TestAuthorityReturnsJSON(t *testing.T) {
	svc := newTestServices(t)
	svc.Authority.Set("gurt://example.gurt/", 0.5)

	h := handlers.New(svc, nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/debug/authority", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "example.gurt")
}
