// Package gurtrouter implements the request router of §4.12: a single
// overlay.Handler dispatching parsed frames across the static UI, the
// query API, and the site-submission API. Grounded on the teacher's
// gin route table in internal/server/routes.go, generalized from HTTP
// muxing to a manual switch over GURT's method+path since the overlay
// layer carries no net/http server to register handlers on.
package gurtrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gurted/gurtd/internal/cache"
	"github.com/gurted/gurtd/internal/ingest"
	"github.com/gurted/gurtd/internal/index"
	"github.com/gurted/gurtd/internal/linkgraph"
	"github.com/gurted/gurtd/internal/protocol"
	"github.com/gurted/gurtd/internal/query"
	"github.com/gurted/gurtd/internal/ratelimit"
	"github.com/gurted/gurtd/internal/rescore"
	"github.com/gurted/gurtd/internal/storage"
)

const (
	envForceOverload = "GURTD_DEBUG_FORCE_OVERLOAD"
	envForceError    = "GURTD_DEBUG_FORCE_ERROR"

	searchResultSize = 10
	maxDomainLength  = 255
)

// Router dispatches every parsed request per §4.12's routing table. It
// holds direct references to its collaborators rather than a bundling
// services struct, so internal/services can depend on gurtrouter
// without a cycle back.
type Router struct {
	Logger    *slog.Logger
	AssetsDir string

	Index     index.Engine
	Cache     *cache.HotQueryCache
	Authority *linkgraph.AuthorityStore
	Limiter   *ratelimit.Limiter
	Store     *storage.Store
	Worker    *ingest.Worker
}

var _ interface {
	Handle(ctx context.Context, req protocol.Request, peer net.Addr) protocol.Response
} = (*Router)(nil)

// Handle implements overlay.Handler.
func (r *Router) Handle(ctx context.Context, req protocol.Request, peer net.Addr) protocol.Response {
	path := pathOnly(req.Path)

	switch {
	case req.Method == "GET" && path == "/":
		return r.serveAsset("index.html", fallbackIndexHTML)
	case req.Method == "GET" && path == "/search":
		return r.handleSearchPage(ctx, req)
	case req.Method == "GET" && path == "/domains":
		return r.serveAsset("domains.html", fallbackDomainsHTML)
	case req.Method == "GET" && strings.HasPrefix(path, "/assets/"):
		return r.handleAsset(path)
	case req.Method == "GET" && path == "/health/ready":
		return jsonResponse(protocol.StatusOK, `{"status":"ready"}`)
	case req.Method == "GET" && path == "/api/search":
		return r.handleAPISearch(ctx, req)
	case req.Method == "POST" && path == "/api/sites":
		return r.handleSiteSubmission(ctx, req, peer)
	default:
		return jsonResponse(protocol.StatusBadRequest, `{"error":"not found"}`)
	}
}

func pathOnly(raw string) string {
	path, _, _ := strings.Cut(raw, "?")
	return path
}

func queryParam(raw, name string) string {
	_, q, found := strings.Cut(raw, "?")
	if !found {
		return ""
	}
	values, err := url.ParseQuery(q)
	if err != nil {
		return ""
	}
	return values.Get(name)
}

// handleSearchPage renders results server-side when q is present, else
// serves the search template untouched, per §4.12.
func (r *Router) handleSearchPage(ctx context.Context, req protocol.Request) protocol.Response {
	q := strings.TrimSpace(queryParam(req.Path, "q"))
	if q == "" {
		return r.serveAsset("search.html", fallbackSearchHTML)
	}
	results, status := r.runQuery(q)
	if status != protocol.StatusOK {
		return jsonResponse(status, errorBody(status))
	}
	return htmlResponse(protocol.StatusOK, renderResultsHTML(q, results))
}

// handleAPISearch implements the /api/search contract of §4.12: extract
// and decode q, honor the overload/force-error test flags, consult the
// hot-query cache, and on miss run the engine, rescore, and cache.
func (r *Router) handleAPISearch(ctx context.Context, req protocol.Request) protocol.Response {
	if envFlagSet(envForceOverload) {
		return jsonResponse(protocol.StatusTooManyRequests, `{"error":"overloaded"}`)
	}
	if envFlagSet(envForceError) {
		return jsonResponse(protocol.StatusInternalServerError, `{"error":"internal"}`)
	}

	raw := queryParam(req.Path, "q")
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}
	q := strings.TrimSpace(decoded)
	if q == "" {
		return jsonResponse(protocol.StatusBadRequest, `{"error":"missing query"}`)
	}

	parsed := query.Parse(q)
	key := parsed.NormalizeKey()
	if r.Cache != nil {
		if cached, ok := r.Cache.Get(key); ok {
			return protocol.Response{Status: protocol.StatusOK, Headers: jsonHeaders(), Body: cached}
		}
	}

	if r.Index == nil {
		return jsonResponse(protocol.StatusInternalServerError, `{"error":"index unavailable"}`)
	}
	hits, err := r.Index.Search(parsed.AnalyzedTerms(), parsed.Filter, 1, searchResultSize)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warn("search failed", "query", q, "err", err)
		}
		return jsonResponse(protocol.StatusInternalServerError, `{"error":"search failed"}`)
	}

	results := rescore.Rescore(hits, r.authorityLookup(), 0, time.Now(), searchResultSize)
	body, err := json.Marshal(results)
	if err != nil {
		return jsonResponse(protocol.StatusInternalServerError, `{"error":"encode failed"}`)
	}
	if r.Cache != nil {
		r.Cache.Put(key, body)
	}
	return protocol.Response{Status: protocol.StatusOK, Headers: jsonHeaders(), Body: body}
}

func (r *Router) runQuery(q string) ([]rescore.Result, protocol.Status) {
	if r.Index == nil {
		return nil, protocol.StatusInternalServerError
	}
	parsed := query.Parse(q)
	hits, err := r.Index.Search(parsed.AnalyzedTerms(), parsed.Filter, 1, searchResultSize)
	if err != nil {
		return nil, protocol.StatusInternalServerError
	}
	return rescore.Rescore(hits, r.authorityLookup(), 0, time.Now(), searchResultSize), protocol.StatusOK
}

func (r *Router) authorityLookup() rescore.AuthorityLookup {
	if r.Authority == nil {
		return func(string) float64 { return 0 }
	}
	return r.Authority.Get
}

// siteSubmission accepts either {"domain":"..."} or {"url":"gurt://host/..."}.
type siteSubmission struct {
	Domain string `json:"domain"`
	URL    string `json:"url"`
}

// handleSiteSubmission implements the /api/sites contract of §4.12:
// per-address rate limiting, JSON body parsing, domain validation,
// async persistence, and synchronous worker enqueue.
func (r *Router) handleSiteSubmission(ctx context.Context, req protocol.Request, peer net.Addr) protocol.Response {
	addr := clientAddr(req, peer)
	if r.Limiter != nil && !r.Limiter.Allow(addr) {
		return jsonResponse(protocol.StatusTooManyRequests, `{"error":"rate limited"}`)
	}

	var sub siteSubmission
	if err := json.Unmarshal(req.Body, &sub); err != nil {
		return jsonResponse(protocol.StatusBadRequest, `{"error":"invalid json body"}`)
	}

	domain := strings.ToLower(strings.TrimSpace(sub.Domain))
	if domain == "" && sub.URL != "" {
		domain = strings.ToLower(hostFromGurtURL(sub.URL))
	}
	if !validDomain(domain) {
		return jsonResponse(protocol.StatusBadRequest, `{"error":"invalid domain"}`)
	}

	if r.Store != nil {
		go func(d string) {
			if err := r.Store.UpsertSubmission(d, "api"); err != nil && r.Logger != nil {
				r.Logger.Warn("submission persist failed", "domain", d, "err", err)
			}
		}(domain)
	}
	if r.Worker != nil {
		r.Worker.Enqueue(domain)
	}

	return jsonResponse(protocol.StatusOK, fmt.Sprintf(`{"status":"accepted","domain":%q}`, domain))
}

// clientAddr prefers the first x-forwarded-for entry over the raw peer
// socket, per §4.12.
func clientAddr(req protocol.Request, peer net.Addr) string {
	if xff, ok := req.Headers.Get("x-forwarded-for"); ok {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if peer != nil {
		return peer.String()
	}
	return "unknown"
}

func hostFromGurtURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// validDomain enforces §4.12's submission validation: non-empty, at
// most 255 bytes, and every byte in [a-z0-9.-].
func validDomain(domain string) bool {
	if domain == "" || len(domain) > maxDomainLength {
		return false
	}
	for i := 0; i < len(domain); i++ {
		c := domain[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '-':
		default:
			return false
		}
	}
	return true
}

func envFlagSet(name string) bool {
	v := os.Getenv(name)
	return v != "" && v != "0"
}

// handleAsset serves a file under AssetsDir/assets/..., rejecting any
// path segment that could escape the directory.
func (r *Router) handleAsset(path string) protocol.Response {
	rel := strings.TrimPrefix(path, "/assets/")
	if rel == "" || strings.Contains(rel, "..") {
		return jsonResponse(protocol.StatusBadRequest, `{"error":"invalid asset path"}`)
	}
	if r.AssetsDir == "" {
		return jsonResponse(protocol.StatusBadRequest, `{"error":"asset not found"}`)
	}
	data, err := os.ReadFile(filepath.Join(r.AssetsDir, "assets", rel))
	if err != nil {
		return jsonResponse(protocol.StatusBadRequest, `{"error":"asset not found"}`)
	}
	headers := protocol.Headers{}
	headers.Set("content-type", contentTypeFor(rel))
	return protocol.Response{Status: protocol.StatusOK, Headers: headers, Body: data}
}

// serveAsset reads name from AssetsDir, falling back to an inline
// constant when the disk asset is absent — the static UI is an
// external collaborator per §1, loaded from disk with inline fallback.
func (r *Router) serveAsset(name, fallback string) protocol.Response {
	if r.AssetsDir != "" {
		if data, err := os.ReadFile(filepath.Join(r.AssetsDir, name)); err == nil {
			return htmlResponse(protocol.StatusOK, string(data))
		}
	}
	return htmlResponse(protocol.StatusOK, fallback)
}

func contentTypeFor(name string) string {
	switch {
	case strings.HasSuffix(name, ".css"):
		return "text/css"
	case strings.HasSuffix(name, ".js"):
		return "application/javascript"
	case strings.HasSuffix(name, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

func jsonHeaders() protocol.Headers {
	h := protocol.Headers{}
	h.Set("content-type", "application/json")
	return h
}

func jsonResponse(status protocol.Status, body string) protocol.Response {
	return protocol.Response{Status: status, Headers: jsonHeaders(), Body: []byte(body)}
}

func htmlResponse(status protocol.Status, body string) protocol.Response {
	h := protocol.Headers{}
	h.Set("content-type", "text/html; charset=utf-8")
	return protocol.Response{Status: status, Headers: h, Body: []byte(body)}
}

func errorBody(status protocol.Status) string {
	return fmt.Sprintf(`{"error":%q}`, strings.ToLower(status.Reason()))
}
