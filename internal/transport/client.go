package transport

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/gurted/gurtd/internal/overlay"
	"github.com/gurted/gurtd/internal/protocol"
	"github.com/gurted/gurtd/internal/resolver"
)

// Client fetches pages over the overlay protocol, resolving hostnames
// through a Resolver and honoring §4.4's per-stage timeout budget and
// retry policy.
type Client struct {
	cfg      Config
	resolver resolver.Resolver
}

// New builds a Client. A nil resolver is valid; in that case only
// literal-IP targets can be fetched.
func New(cfg Config, r resolver.Resolver) *Client {
	return &Client{cfg: cfg.Normalize(), resolver: r}
}

// Fetch resolves, connects, and performs one request/response exchange
// against rawURL, retrying per withRetry's policy.
func (c *Client) Fetch(ctx context.Context, rawURL string) (protocol.Response, error) {
	return c.FetchMethod(ctx, "GET", rawURL, nil)
}

// FetchMethod is Fetch generalized to an explicit method and body.
func (c *Client) FetchMethod(ctx context.Context, method, rawURL string, body []byte) (protocol.Response, error) {
	t, err := parseURL(rawURL)
	if err != nil {
		return protocol.Response{}, protocol.New(protocol.KindInvalidMessage, err)
	}

	deadline := time.Now().Add(c.cfg.FetchTimeout)
	fetchCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	return withRetry(fetchCtx, c.cfg, func() (protocol.Response, error) {
		return c.attempt(fetchCtx, method, t, body)
	})
}

func (c *Client) attempt(ctx context.Context, method string, t target, body []byte) (protocol.Response, error) {
	ip, err := c.resolveHost(ctx, t.Host)
	if err != nil {
		return protocol.Response{}, protocol.New(protocol.KindConnection, err)
	}

	addr := net.JoinHostPort(ip, t.Port)
	conn, err := overlay.Dial("tcp", addr, c.cfg.ConnectTimeout, c.cfg.HandshakeTimeout)
	if err != nil {
		return protocol.Response{}, err
	}
	defer conn.Close()

	req := protocol.Request{
		Method: method,
		Path:   t.Path,
		Headers: protocol.Headers{
			{Name: "host", Value: t.Host},
			{Name: "user-agent", Value: c.cfg.UserAgent},
		},
		Body: body,
	}
	if len(body) > 0 {
		req.Headers.Set("content-length", strconv.Itoa(len(body)))
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}
	if _, err := conn.Write(protocol.SerializeRequest(req)); err != nil {
		return protocol.Response{}, protocol.New(protocol.KindIO, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}
	block, bodyStart, err := protocol.ReadHeaderBlock(conn, protocol.MaxMessageSize)
	if err != nil {
		return protocol.Response{}, protocol.New(protocol.KindIO, err)
	}
	resp, err := protocol.ParseResponseHeaderBlock(block[:bodyStart])
	if err != nil {
		return protocol.Response{}, err
	}

	already := block[bodyStart:]
	length, haveLength := protocol.ContentLength(resp.Headers)
	respBody, err := readBody(conn, already, length, haveLength, c.cfg.IdleTimeout)
	if err != nil {
		return protocol.Response{}, protocol.New(protocol.KindIO, err)
	}
	resp.Body = respBody
	return resp, nil
}

// resolveHost honors §4.4's address precedence: a literal IP in the URL
// is used as-is, otherwise the configured resolver (already itself a
// Chained of overlay/local/OS resolvers) is consulted.
func (c *Client) resolveHost(ctx context.Context, host string) (string, error) {
	if isLiteralIP(host) {
		return host, nil
	}
	if c.resolver == nil {
		return "", &hostUnresolvableError{host: host}
	}
	return c.resolver.Resolve(ctx, host)
}

type hostUnresolvableError struct{ host string }

func (e *hostUnresolvableError) Error() string {
	return "transport: no resolver configured to resolve " + e.host
}
