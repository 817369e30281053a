package resolver

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gurted/gurtd/internal/protocol"
)

// Config configures an OverlayResolver.
type Config struct {
	// Endpoint is the resolver's host:port. If LiteralAddr is set, it is
	// dialed directly instead of Endpoint's host being looked up.
	Endpoint    string
	LiteralAddr string
	Deadline    time.Duration // per-attempt overall deadline, default 2s
}

// inflightCall coalesces concurrent resolutions for the same name,
// grounded on the teacher's ForwardingResolver singleflight map
// (inflightMu/inflight).
type inflightCall struct {
	done chan struct{}
	addr string
	err  error
}

// OverlayResolver resolves names over the overlay protocol's
// /resolve-full endpoint, with CNAME chasing, a 60s TTL cache, and
// per-name single-flight deduplication.
type OverlayResolver struct {
	cfg   Config
	cache *TTLCache

	inflightMu sync.Mutex
	inflight   map[string]*inflightCall
}

// NewOverlayResolver constructs a resolver. cfg.Deadline defaults to 2s
// if zero, per §4.3.
func NewOverlayResolver(cfg Config) *OverlayResolver {
	if cfg.Deadline <= 0 {
		cfg.Deadline = 2 * time.Second
	}
	return &OverlayResolver{
		cfg:      cfg,
		cache:    NewTTLCache(60*time.Second, 8192),
		inflight: map[string]*inflightCall{},
	}
}

// Resolve looks up name, consulting the cache first and coalescing
// concurrent lookups for the same name.
func (r *OverlayResolver) Resolve(ctx context.Context, name string) (string, error) {
	if addr, ok := r.cache.Get(name); ok {
		return addr, nil
	}

	r.inflightMu.Lock()
	if call, ok := r.inflight[name]; ok {
		r.inflightMu.Unlock()
		<-call.done
		return call.addr, call.err
	}
	call := &inflightCall{done: make(chan struct{})}
	r.inflight[name] = call
	r.inflightMu.Unlock()

	call.addr, call.err = r.resolveChain(ctx, name)
	close(call.done)

	r.inflightMu.Lock()
	delete(r.inflight, name)
	r.inflightMu.Unlock()

	return call.addr, call.err
}

func (r *OverlayResolver) resolveChain(ctx context.Context, originalName string) (string, error) {
	name := originalName
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Deadline)
	defer cancel()

	dialAddr := r.cfg.LiteralAddr
	if dialAddr == "" {
		dialAddr = r.cfg.Endpoint
	}

	for depth := 0; depth < maxChainDepth; depth++ {
		req := resolveFullRequest(name)
		resp, err := exchange(ctx, dialAddr, req, r.cfg.Deadline)
		if err != nil {
			return "", err
		}
		if resp.Status != protocol.StatusOK {
			return "", &notFoundError{name: name}
		}
		var parsed resolveResponse
		if err := json.Unmarshal(resp.Body, &parsed); err != nil {
			return "", protocol.New(protocol.KindInvalidMessage, err)
		}

		addr, cname, found := selectRecord(parsed.Records)
		if found {
			r.cache.Set(name, addr)
			r.cache.Set(originalName, addr)
			return addr, nil
		}
		if cname == "" {
			return "", &notFoundError{name: name}
		}
		name = strings.TrimSuffix(cname, ".")
	}
	return "", &notFoundError{name: originalName}
}

// selectRecord implements §4.3's preference order: first A, then first
// AAAA, then (if neither present) the first CNAME target.
func selectRecord(records []Record) (addr, cname string, found bool) {
	for _, rec := range records {
		if strings.EqualFold(rec.Type, "A") {
			return rec.Value, "", true
		}
	}
	for _, rec := range records {
		if strings.EqualFold(rec.Type, "AAAA") {
			return rec.Value, "", true
		}
	}
	for _, rec := range records {
		if strings.EqualFold(rec.Type, "CNAME") {
			return "", rec.Value, false
		}
	}
	return "", "", false
}
