package handlers_test

import (
	"github.com/gin-gonic/gin"
	"github.com/gurted/gurtd/internal/adminapi/handlers"
)

func setupTestRouter(h *handlers.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/healthz", h.Healthz)
	api := r.Group("/api/v1")
	api.GET("/debug/stats", h.Stats)
	api.GET("/debug/index", h.IndexSearch)
	api.GET("/debug/authority", h.Authority)

	return r
}
