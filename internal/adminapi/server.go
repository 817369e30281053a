// Package adminapi is the ops surface named in SPEC_FULL.md: liveness,
// runtime stats, and read-only debug introspection over the index and
// link-authority store, plus an optional on-disk admin UI mount.
// Grounded on the teacher's internal/api package (gin engine, slog
// middleware, swagger mount), generalized from HydraDNS's zone/
// filtering/custom-DNS management surface to gurtd's read-mostly debug
// surface — the admin API only ever reads from Services, it never
// mutates the crawl or index state.
package adminapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/gurted/gurtd/internal/adminapi/handlers"
	"github.com/gurted/gurtd/internal/config"
	"github.com/gurted/gurtd/internal/services"
)

const fallbackAdminIndexHTML = `<!doctype html><html><head><title>gurtd admin</title></head>` +
	`<body><h1>gurtd admin</h1><ul>` +
	`<li><a href="/healthz">/healthz</a></li>` +
	`<li><a href="/api/v1/debug/stats">/api/v1/debug/stats</a></li>` +
	`<li><a href="/api/v1/debug/authority">/api/v1/debug/authority</a></li>` +
	`<li><a href="/swagger/index.html">/swagger/index.html</a></li>` +
	`</ul></body></html>`

// Server is the admin API's gin-based HTTP server.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

// New builds the admin API server bound to svc. assetsDir, if
// non-empty, is served at "/"; otherwise every non-API route falls
// back to a minimal inline index.
func New(cfg *config.Config, logger *slog.Logger, svc *services.Services, assetsDir string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(loggerOrNoop(logger))

	h := handlers.New(svc, logger)
	registerRoutes(engine, h, cfg)
	mountStaticUI(engine, assetsDir, logger)

	addr := net.JoinHostPort(cfg.API.Host, strconv.Itoa(cfg.API.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{cfg: cfg, logger: logger, engine: engine, httpServer: httpServer}
}

func loggerOrNoop(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if logger != nil {
			logger.Debug("admin api request", "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", time.Since(start).Milliseconds())
		}
	}
}

// mountStaticUI serves assetsDir at "/" when present, degrading to an
// inline placeholder for any non-API route otherwise — the admin UI is
// an external collaborator per §1, same framing as gurtrouter's static
// site, adapted here from the teacher's embedded-SPA mount in
// internal/api/spa_mount.go to an on-disk mount with inline fallback.
func mountStaticUI(r *gin.Engine, assetsDir string, logger *slog.Logger) {
	if assetsDir != "" {
		r.Use(static.Serve("/", static.LocalFile(assetsDir, true)))
	}
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") || strings.HasPrefix(c.Request.URL.Path, "/swagger") {
			c.Status(http.StatusNotFound)
			return
		}
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, fallbackAdminIndexHTML)
	})
}

func (s *Server) Addr() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.Addr
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
