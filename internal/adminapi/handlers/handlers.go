// Package handlers implements the admin API's gin endpoint handlers:
// liveness, runtime statistics, and read-only debug introspection over
// the index and link-authority store.
//
// @title gurtd admin API
// @version 1.0
// @description Operational surface for gurtd: health, runtime stats, and read-only debug introspection.
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"log/slog"
	"time"

	"github.com/gurted/gurtd/internal/services"
)

// Handler holds the admin API's dependencies, grounded on the
// teacher's handlers.Handler shape in internal/api/handlers/base.go.
type Handler struct {
	svc       *services.Services
	logger    *slog.Logger
	startTime time.Time
}

// New constructs a Handler bound to svc.
func New(svc *services.Services, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger, startTime: time.Now()}
}
