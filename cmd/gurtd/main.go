// Command gurtd is the gurted overlay search engine: the crawl+index
// pipeline, the query path, and the overlay request router, all
// served behind one TLS-wrapped listener, with an optional admin API
// alongside it. Grounded on the teacher's cmd/hydradns/main.go —
// flags, config load, logging configure, signal-driven shutdown — with
// the database-backed config export and cluster syncer dropped in
// favor of this module's plain viper config load.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gurted/gurtd/internal/adminapi"
	"github.com/gurted/gurtd/internal/config"
	"github.com/gurted/gurtd/internal/logging"
	"github.com/gurted/gurtd/internal/overlay"
	"github.com/gurted/gurtd/internal/services"
	"github.com/gurted/gurtd/internal/tlsmaterial"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	configPath string
	host       string
	port       int
	assetsDir  string
	jsonLogs   bool
	debug      bool
	noAPI      bool
}

func parseFlags() cliFlags {
	var f cliFlags
	pflag.StringVar(&f.configPath, "config", "", "Path to YAML config file")
	pflag.StringVar(&f.host, "host", "", "Override overlay server bind host")
	pflag.IntVar(&f.port, "port", 0, "Override overlay server bind port")
	pflag.StringVar(&f.assetsDir, "assets", "", "Directory holding static site assets (index.html, search.html, domains.html, assets/)")
	pflag.BoolVar(&f.jsonLogs, "json-logs", false, "Enable JSON structured logging")
	pflag.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	pflag.BoolVar(&f.noAPI, "no-api", false, "Disable the admin API even if configured enabled")
	pflag.Parse()
	return f
}

func applyCLIOverrides(cfg *config.Config, f cliFlags) {
	if f.host != "" {
		cfg.Server.Host = f.host
	}
	if f.port != 0 {
		cfg.Server.Port = f.port
	}
	if f.jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if f.debug {
		cfg.Logging.Level = "DEBUG"
	}
	if f.noAPI {
		cfg.API.Enabled = false
	}
}

func run() error {
	flags := parseFlags()

	cfg, err := config.Load(config.ResolveConfigPath(flags.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyCLIOverrides(cfg, flags)

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
		ExtraFields:      cfg.Logging.ExtraFields,
	})
	logger.Info("gurtd starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"crawl_workers", cfg.Crawl.Workers.String(),
		"seeds", len(cfg.Crawl.Seeds),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc, err := services.Build(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}
	defer svc.Close()

	cert, err := tlsmaterial.LoadServerCredential(cfg.Server.CertPath, cfg.Server.KeyPath)
	if err != nil {
		return fmt.Errorf("failed to load TLS credential: %w", err)
	}

	if flags.assetsDir != "" {
		svc.Router.AssetsDir = flags.assetsDir
	}

	go svc.Worker.Run(ctx)
	svc.SeedCrawl(cfg.Crawl.Seeds)

	overlaySrv := &overlay.Server{Logger: logger, Handler: svc.Router, TLSCert: cert}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	errCh := make(chan error, 2)
	go func() { errCh <- overlaySrv.Run(ctx, addr) }()

	var adminSrv *adminapi.Server
	if cfg.API.Enabled {
		adminSrv = adminapi.New(cfg, logger, svc, flags.assetsDir)
		logger.Info("admin api starting", "addr", adminSrv.Addr())
		go func() {
			serveErr := adminSrv.ListenAndServe()
			if serveErr == nil || errors.Is(serveErr, http.ErrServerClosed) {
				return
			}
			logger.Error("admin api error", "err", serveErr)
			errCh <- serveErr
		}()
	}

	logger.Info("gurtd listening", "addr", addr)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "err", err)
		}
	}

	overlaySrv.Stop(5 * time.Second)
	if adminSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = adminSrv.Shutdown(shutdownCtx)
		shutdownCancel()
	}
	logger.Info("gurtd stopped")
	return nil
}
