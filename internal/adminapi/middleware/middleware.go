// Package middleware provides the admin API's gin middleware: a shared
// API key check and a slog request logger. Adapted near-verbatim from
// the teacher's internal/api/middleware, since gin request logging and
// a shared-secret header check need nothing GURT-specific.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gurted/gurtd/internal/adminapi/models"
)

// RequireAPIKey enforces a shared-secret header. Clients must send
// `X-API-Key: <key>`. A blank expected key disables the check.
func RequireAPIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" || c.GetHeader("X-API-Key") == expected {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
	}
}

// SlogRequestLogger logs each request's method, path, status, and
// latency through the shared structured logger.
func SlogRequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		if logger != nil {
			logger.Info("admin api request",
				"method", method,
				"path", path,
				"status", c.Writer.Status(),
				"latency_ms", time.Since(start).Milliseconds(),
				"client_ip", c.ClientIP(),
			)
		}
	}
}
