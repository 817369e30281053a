package adminapi

import (
	"github.com/gin-gonic/gin"
	"github.com/gurted/gurtd/internal/adminapi/handlers"
	"github.com/gurted/gurtd/internal/adminapi/middleware"
	"github.com/gurted/gurtd/internal/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/gurted/gurtd/internal/adminapi/docs"
)

// registerRoutes wires the admin API's routes, grounded on the
// teacher's RegisterRoutes in internal/api/routes.go: swagger UI,
// optional API-key group, then one route per handler.
func registerRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", h.Healthz)

	group := r.Group("/api/v1")
	if cfg != nil && cfg.API.APIKey != "" {
		group.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}
	group.GET("/debug/stats", h.Stats)
	group.GET("/debug/index", h.IndexSearch)
	group.GET("/debug/authority", h.Authority)
}
