// Package services is the composition root: it builds every shared
// collaborator exactly once and bundles them on a single Services
// value, per §2's component overview. Grounded on the teacher's Runner
// in internal/server/runner.go, which does the equivalent wiring
// (resolver chain, rate limiter, handler, servers) inline in Run;
// here the wiring is split out into its own buildable value so
// cmd/gurtd, tests, and tools like cmd/gurtquery can all construct the
// same stack without duplicating it.
package services

import (
	"log/slog"
	"time"

	"github.com/gurted/gurtd/internal/cache"
	"github.com/gurted/gurtd/internal/config"
	"github.com/gurted/gurtd/internal/gurtrouter"
	"github.com/gurted/gurtd/internal/index"
	"github.com/gurted/gurtd/internal/ingest"
	"github.com/gurted/gurtd/internal/linkgraph"
	"github.com/gurted/gurtd/internal/ratelimit"
	"github.com/gurted/gurtd/internal/render"
	"github.com/gurted/gurtd/internal/resolver"
	"github.com/gurted/gurtd/internal/scheduler"
	"github.com/gurted/gurtd/internal/storage"
	"github.com/gurted/gurtd/internal/transport"
)

// Services bundles every long-lived component the core depends on,
// constructed once in Build and shared by the overlay server's router,
// the ingestion worker goroutine, and the admin API.
type Services struct {
	Logger    *slog.Logger
	Index     index.Engine
	Cache     *cache.HotQueryCache
	Authority *linkgraph.AuthorityStore
	Graph     *linkgraph.Graph
	Recrawl   *render.RecrawlQueue
	Limiter   *ratelimit.Limiter
	Scheduler *scheduler.Scheduler
	Resolver  resolver.Resolver
	Transport *transport.Client
	Store     *storage.Store
	Worker    *ingest.Worker
	Router    *gurtrouter.Router
}

// Build wires every component from cfg, in the same "resolve settings,
// construct, fall back gracefully" spirit as the teacher's
// buildResolverChain/buildFilteringPolicy. A storage open failure is
// the only fatal wiring error; everything else degrades (e.g. a
// missing index path falls back to an in-memory engine inside
// index.Open itself).
func Build(cfg *config.Config, logger *slog.Logger) (*Services, error) {
	s := &Services{Logger: logger}

	s.Index = index.Open(cfg.Index.Path)
	s.Cache = cache.New(parseDurationOr(cfg.Index.HotCacheTTL, cache.DefaultTTL), cfg.Index.HotCacheSize)
	s.Authority = linkgraph.NewAuthorityStore()
	s.Graph = linkgraph.New()
	s.Recrawl = &render.RecrawlQueue{}

	s.Limiter = ratelimit.New(ratelimit.Config{
		Rate:            cfg.RateLimit.IPQPS,
		Burst:           cfg.RateLimit.IPBurst,
		CleanupInterval: time.Duration(cfg.RateLimit.CleanupSeconds * float64(time.Second)),
		MaxEntries:      cfg.RateLimit.MaxIPEntries,
	})

	s.Scheduler = scheduler.New(cfg.Scheduler.GlobalPermits, cfg.Scheduler.HostPermits)

	chain := &resolver.Chained{Resolvers: []resolver.Resolver{
		resolver.LocalResolver{},
		resolver.NewOverlayResolver(resolver.Config{}),
		resolver.OSFallback{},
	}}
	s.Resolver = chain

	s.Transport = transport.New(transport.Config{
		ConnectTimeout:   parseDurationOr(cfg.Transport.ConnectTimeout, 0),
		HandshakeTimeout: parseDurationOr(cfg.Transport.HandshakeTimeout, 0),
		FetchTimeout:     parseDurationOr(cfg.Transport.FetchTimeout, 0),
		IdleTimeout:      parseDurationOr(cfg.Transport.IdleTimeout, 0),
		UserAgent:        cfg.Transport.UserAgent,
		MaxRetries:       cfg.Transport.MaxRetries,
	}, s.Resolver)

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	s.Store = store

	s.Worker = ingest.New(s.Scheduler, s.Transport, s.Index, s.Graph, s.Recrawl, s.Store, logger)
	s.Worker.RespectRobots = cfg.Crawl.RespectRobots
	s.Worker.MaxCandidates = cfg.Crawl.MaxCandidatesPerRun
	s.Worker.UserAgent = cfg.Transport.UserAgent

	s.Router = &gurtrouter.Router{
		Logger:    logger,
		Index:     s.Index,
		Cache:     s.Cache,
		Authority: s.Authority,
		Limiter:   s.Limiter,
		Store:     s.Store,
		Worker:    s.Worker,
	}

	return s, nil
}

// Close releases everything Build acquired that needs releasing.
func (s *Services) Close() error {
	if s.Store != nil {
		return s.Store.Close()
	}
	return nil
}

// SeedCrawl enqueues every configured seed domain with the worker,
// per §4.11's intake rule — called once at startup so a fresh index
// has something to build from before any submission arrives.
func (s *Services) SeedCrawl(seeds []string) {
	for _, seed := range seeds {
		s.Worker.Enqueue(seed)
	}
}

func parseDurationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
