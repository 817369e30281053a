package gurtrouter

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/gurted/gurtd/internal/cache"
	"github.com/gurted/gurtd/internal/index"
	"github.com/gurted/gurtd/internal/linkgraph"
	"github.com/gurted/gurtd/internal/protocol"
	"github.com/gurted/gurtd/internal/ratelimit"
	"github.com/gurted/gurtd/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAddr string

func (a fakeAddr) Network() string { return "tcp" }
func (a fakeAddr) String() string  { return string(a) }

func newTestRouter(t *testing.T) *Router {
	eng := index.Open("")
	require.NoError(t, eng.Add(index.Document{
		URL: "gurt://example.gurt/", Domain: "example.gurt",
		Title: "Example Page", Content: "hello world example content",
		FetchTime: time.Now().Unix(), Language: "en", RenderMode: "static",
	}))
	require.NoError(t, eng.Commit())
	require.NoError(t, eng.Refresh())

	return &Router{
		Index:     eng,
		Cache:     cache.New(20*time.Second, 64),
		Authority: linkgraph.NewAuthorityStore(),
		Limiter:   ratelimit.New(ratelimit.Config{Rate: 5.0 / 60.0, Burst: 5, CleanupInterval: time.Minute, MaxEntries: 1024}),
	}
}

func TestHandleHealthReady(t *testing.T) {
	r := newTestRouter(t)
	resp := r.Handle(context.Background(), protocol.Request{Method: "GET", Path: "/health/ready"}, nil)
	assert.Equal(t, protocol.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), `"ready"`)
}

func TestHandleIndexFallback(t *testing.T) {
	r := newTestRouter(t)
	resp := r.Handle(context.Background(), protocol.Request{Method: "GET", Path: "/"}, nil)
	assert.Equal(t, protocol.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), "gurted")
}

func TestHandleUnknownRouteReturnsBadRequest(t *testing.T) {
	r := newTestRouter(t)
	resp := r.Handle(context.Background(), protocol.Request{Method: "GET", Path: "/nope"}, nil)
	assert.Equal(t, protocol.StatusBadRequest, resp.Status)
}

func TestHandleAssetRejectsDotDot(t *testing.T) {
	r := newTestRouter(t)
	r.AssetsDir = t.TempDir()
	resp := r.Handle(context.Background(), protocol.Request{Method: "GET", Path: "/assets/../secret.txt"}, nil)
	assert.Equal(t, protocol.StatusBadRequest, resp.Status)
}

func TestHandleAPISearchMissingQuery(t *testing.T) {
	r := newTestRouter(t)
	resp := r.Handle(context.Background(), protocol.Request{Method: "GET", Path: "/api/search"}, nil)
	assert.Equal(t, protocol.StatusBadRequest, resp.Status)
}

func TestHandleAPISearchReturnsResultsAndCaches(t *testing.T) {
	r := newTestRouter(t)
	req := protocol.Request{Method: "GET", Path: "/api/search?q=hello"}
	resp := r.Handle(context.Background(), req, nil)
	assert.Equal(t, protocol.StatusOK, resp.Status)

	var results []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body, &results))
	assert.NotEmpty(t, results)

	_, ok := r.Cache.Get("hello")
	assert.True(t, ok)
}

func TestHandleAPISearchForceOverload(t *testing.T) {
	t.Setenv(envForceOverload, "1")
	r := newTestRouter(t)
	resp := r.Handle(context.Background(), protocol.Request{Method: "GET", Path: "/api/search?q=hello"}, nil)
	assert.Equal(t, protocol.StatusTooManyRequests, resp.Status)
}

func TestHandleAPISearchForceError(t *testing.T) {
	t.Setenv(envForceError, "1")
	r := newTestRouter(t)
	resp := r.Handle(context.Background(), protocol.Request{Method: "GET", Path: "/api/search?q=hello"}, nil)
	assert.Equal(t, protocol.StatusInternalServerError, resp.Status)
}

func TestHandleSiteSubmissionAcceptsDomainField(t *testing.T) {
	r := newTestRouter(t)
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	r.Store = store
	req := protocol.Request{Method: "POST", Path: "/api/sites", Body: []byte(`{"domain":"example.gurt"}`)}
	resp := r.Handle(context.Background(), req, fakeAddr("1.2.3.4:1234"))
	assert.Equal(t, protocol.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), `"accepted"`)
	assert.Contains(t, string(resp.Body), "example.gurt")
}

func TestHandleSiteSubmissionExtractsHostFromURL(t *testing.T) {
	r := newTestRouter(t)
	req := protocol.Request{Method: "POST", Path: "/api/sites", Body: []byte(`{"url":"gurt://other.gurt/page"}`)}
	resp := r.Handle(context.Background(), req, fakeAddr("1.2.3.4:1234"))
	assert.Equal(t, protocol.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), "other.gurt")
}

func TestHandleSiteSubmissionRejectsInvalidDomain(t *testing.T) {
	r := newTestRouter(t)
	req := protocol.Request{Method: "POST", Path: "/api/sites", Body: []byte(`{"domain":"NOT VALID!!"}`)}
	resp := r.Handle(context.Background(), req, fakeAddr("1.2.3.4:1234"))
	assert.Equal(t, protocol.StatusBadRequest, resp.Status)
}

func TestHandleSiteSubmissionRateLimited(t *testing.T) {
	r := newTestRouter(t)
	r.Limiter = ratelimit.New(ratelimit.Config{Rate: 0.001, Burst: 1, CleanupInterval: time.Minute, MaxEntries: 16})
	req := protocol.Request{Method: "POST", Path: "/api/sites", Body: []byte(`{"domain":"example.gurt"}`)}
	peer := fakeAddr("9.9.9.9:1")
	first := r.Handle(context.Background(), req, peer)
	assert.Equal(t, protocol.StatusOK, first.Status)
	second := r.Handle(context.Background(), req, peer)
	assert.Equal(t, protocol.StatusTooManyRequests, second.Status)
}

func TestClientAddrPrefersForwardedFor(t *testing.T) {
	headers := protocol.Headers{}
	headers.Set("x-forwarded-for", "5.6.7.8, 1.1.1.1")
	req := protocol.Request{Headers: headers}
	assert.Equal(t, "5.6.7.8", clientAddr(req, fakeAddr("9.9.9.9:1")))
}

func TestClientAddrFallsBackToPeer(t *testing.T) {
	var peer net.Addr = fakeAddr("9.9.9.9:1")
	assert.Equal(t, "9.9.9.9:1", clientAddr(protocol.Request{}, peer))
}

func TestValidDomainRules(t *testing.T) {
	assert.True(t, validDomain("example.gurt"))
	assert.True(t, validDomain("sub-domain.example.gurt"))
	assert.False(t, validDomain(""))
	assert.False(t, validDomain("Example.GURT"))
	assert.False(t, validDomain("has space.gurt"))
}
