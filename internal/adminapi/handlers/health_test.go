package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gurted/gurtd/internal/adminapi/handlers"
	"github.com/gurted/gurtd/internal/adminapi/models"
	"github.com/gurted/gurtd/internal/config"
	"github.com/gurted/gurtd/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T) *services.Services {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Storage.Path = filepath.Join(t.TempDir(), "gurtd.db")
	cfg.Index.Path = ""

	svc, err := services.Build(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestHealthz(t *testing.T) {
	h := handlers.New(newTestServices(t), nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestStats(t *testing.T) {
	h := handlers.New(newTestServices(t), nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/debug/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Uptime)
	assert.NotEmpty(t, resp.Index.Engine)
}
