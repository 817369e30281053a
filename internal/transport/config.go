// Package transport implements the GURT fetch pipeline: resolve, connect,
// handshake, TLS upgrade, request, response — each stage under its own
// deadline, with fixed-backoff retries on connection/timeout/IO errors.
package transport

import "time"

// Config holds the client's timeouts, clamped to the ranges §4.4
// specifies. Zero values fall back to the defaults before clamping.
type Config struct {
	ConnectTimeout   time.Duration
	HandshakeTimeout time.Duration
	FetchTimeout     time.Duration
	IdleTimeout      time.Duration
	UserAgent        string
	MaxRetries       int
}

const (
	defaultConnectTimeout   = 10 * time.Second
	defaultHandshakeTimeout = 5 * time.Second
	defaultFetchTimeout     = 30 * time.Second
	defaultIdleTimeout      = 500 * time.Millisecond
	defaultMaxRetries       = 2
	defaultUserAgent        = "gurtd-crawler/1.0"
)

func clampDuration(v, lo, hi time.Duration) time.Duration {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize fills zero fields with defaults and clamps every timeout to
// the ranges in §4.4: connect [0.5s, 60s], handshake [0.2s, 30s], fetch
// [1s, 120s], idle [100ms, 5s].
func (c Config) Normalize() Config {
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.HandshakeTimeout == 0 {
		c.HandshakeTimeout = defaultHandshakeTimeout
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = defaultFetchTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = defaultIdleTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}

	c.ConnectTimeout = clampDuration(c.ConnectTimeout, 500*time.Millisecond, 60*time.Second)
	c.HandshakeTimeout = clampDuration(c.HandshakeTimeout, 200*time.Millisecond, 30*time.Second)
	c.FetchTimeout = clampDuration(c.FetchTimeout, time.Second, 120*time.Second)
	c.IdleTimeout = clampDuration(c.IdleTimeout, 100*time.Millisecond, 5*time.Second)
	return c
}
