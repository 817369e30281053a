// Package scheduler gates crawl fetches behind a global concurrency
// pool, a per-host concurrency pool created lazily, and a per-host
// politeness gate enforcing a minimum interval between consecutive
// fetches to the same host, per §4.5.
package scheduler

import (
	"context"
	"sync"
	"time"
)

// Scheduler holds the process-lifetime permit pools and politeness
// state. Grounded on the teacher's rate limiter
// (internal/server/rate_limit.go), which keeps one mutex-guarded
// map-of-per-key-state for an unbounded key space; here the keys are
// hostnames instead of client addresses, and the state is a permit
// channel plus a last-acquired timestamp instead of a sliding window.
type Scheduler struct {
	globalPermits int
	hostPermits   int

	global chan struct{}

	mu      sync.Mutex
	hostSem map[string]chan struct{}

	gateMu sync.Mutex
	last   map[string]time.Time
}

// New builds a Scheduler with a global pool of size globalPermits and a
// per-host pool of size hostPermits, created lazily per host on first
// use.
func New(globalPermits, hostPermits int) *Scheduler {
	if globalPermits <= 0 {
		globalPermits = 1
	}
	if hostPermits <= 0 {
		hostPermits = 1
	}
	return &Scheduler{
		globalPermits: globalPermits,
		hostPermits:   hostPermits,
		global:        make(chan struct{}, globalPermits),
		hostSem:       make(map[string]chan struct{}),
		last:          make(map[string]time.Time),
	}
}

// Release is returned by Acquire; the caller must call it exactly once
// after the fetch completes.
type Release func()

// Acquire acquires one global permit then one host permit, in that
// order, per §4.5. If crawlDelay is positive it then blocks until at
// least crawlDelay has elapsed since this host's last acquisition. The
// returned Release gives back both permits; it must be called even on
// fetch failure.
func (s *Scheduler) Acquire(ctx context.Context, host string, crawlDelay time.Duration) (Release, error) {
	if err := acquireOne(ctx, s.global); err != nil {
		return nil, err
	}
	hostSem := s.hostSemaphore(host)
	if err := acquireOne(ctx, hostSem); err != nil {
		<-s.global
		return nil, err
	}

	if crawlDelay > 0 {
		if err := s.politeWait(ctx, host, crawlDelay); err != nil {
			<-hostSem
			<-s.global
			return nil, err
		}
	}

	return func() {
		<-hostSem
		<-s.global
	}, nil
}

func (s *Scheduler) hostSemaphore(host string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	sem, ok := s.hostSem[host]
	if !ok {
		sem = make(chan struct{}, s.hostPermits)
		s.hostSem[host] = sem
	}
	return sem
}

// politeWait enforces next_acquire - prev_acquire >= delay. The
// mutex-guarded critical section covers only reserving the caller's
// acquisition time slot, never the sleep itself.
func (s *Scheduler) politeWait(ctx context.Context, host string, delay time.Duration) error {
	s.gateMu.Lock()
	slot := time.Now()
	if last, seen := s.last[host]; seen && last.Add(delay).After(slot) {
		slot = last.Add(delay)
	}
	s.last[host] = slot
	s.gateMu.Unlock()

	if wait := time.Until(slot); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func acquireOne(ctx context.Context, sem chan struct{}) error {
	select {
	case sem <- struct{}{}:
		return nil
	default:
	}
	select {
	case sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
