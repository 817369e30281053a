// Package ratelimit implements a single-tier token bucket limiter, used
// to throttle the `/api/sites` submission endpoint per source address.
package ratelimit

import (
	"sync"
	"time"
)

// Config configures a Limiter.
type Config struct {
	Rate            float64       // tokens replenished per second
	Burst           int           // bucket capacity
	CleanupInterval time.Duration // how often stale entries are swept
	MaxEntries      int           // maximum tracked keys
}

// Limiter implements the token bucket algorithm scoped to one key space
// (e.g. submitter address), adapted from the teacher's
// TokenBucketRateLimiter with the global/prefix tiers dropped — spec.md
// calls for per-address limiting only.
type Limiter struct {
	rate            float64
	burst           float64
	cleanupInterval time.Duration
	maxEntries      int

	mu          sync.Mutex
	lastCleanup time.Time
	lastUpdate  map[string]time.Time
	tokens      map[string]float64
}

// New constructs a Limiter. A non-positive Rate or Burst disables
// limiting entirely (Allow always returns true).
func New(cfg Config) *Limiter {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 1
	}
	ci := cfg.CleanupInterval
	if ci <= 0 {
		ci = 60 * time.Second
	}
	return &Limiter{
		rate:            cfg.Rate,
		burst:           float64(cfg.Burst),
		cleanupInterval: ci,
		maxEntries:      maxEntries,
		lastCleanup:     time.Now(),
		lastUpdate:      map[string]time.Time{},
		tokens:          map[string]float64{},
	}
}

// Allow reports whether a request for key should proceed, consuming a
// token if so.
func (l *Limiter) Allow(key string) bool {
	if l == nil || l.rate <= 0.0 || l.burst <= 0.0 {
		return true
	}

	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastCleanup) > l.cleanupInterval {
		l.cleanupLocked(now)
	}

	last, exists := l.lastUpdate[key]
	if !exists {
		if len(l.lastUpdate) >= l.maxEntries {
			l.cleanupLocked(now)
			if len(l.lastUpdate) >= l.maxEntries {
				return false
			}
		}
		l.lastUpdate[key] = now
		l.tokens[key] = l.burst - 1.0
		return true
	}

	elapsed := now.Sub(last).Seconds()
	l.lastUpdate[key] = now

	tokens := l.tokens[key]
	if elapsed > 0 {
		tokens = min(l.burst, tokens+elapsed*l.rate)
	}

	if tokens >= 1.0 {
		l.tokens[key] = tokens - 1.0
		return true
	}
	l.tokens[key] = tokens
	return false
}

func (l *Limiter) cleanupLocked(now time.Time) {
	staleBefore := now.Add(-l.cleanupInterval)
	for k, last := range l.lastUpdate {
		if !last.After(staleBefore) {
			delete(l.lastUpdate, k)
			delete(l.tokens, k)
		}
	}
	l.lastCleanup = now
}
