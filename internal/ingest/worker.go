// Package ingest implements the ingestion worker: single-flight-per-
// domain intake over an unbounded queue, candidate URL enumeration,
// per-URL fetch+render+index, and a bounded-retry storage status mark,
// per §4.11.
package ingest

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gurted/gurtd/internal/index"
	"github.com/gurted/gurtd/internal/linkgraph"
	"github.com/gurted/gurtd/internal/render"
	"github.com/gurted/gurtd/internal/scheduler"
	"github.com/gurted/gurtd/internal/storage"
	"github.com/gurted/gurtd/internal/transport"
)

const (
	maxCandidatesDefault = 16
	renderBudgetDefault  = 120 * time.Millisecond
	statusMarkAttempts   = 3
	statusMarkBackoff    = 100 * time.Millisecond
)

// Worker processes one domain at a time, in FIFO order, over an
// unbounded in-memory queue — grounded on the teacher's
// runMigrations/InitDefaults bounded-retry-then-log idiom for the final
// status mark, generalized from DB setup to per-domain completion.
type Worker struct {
	Scheduler *scheduler.Scheduler
	Transport *transport.Client
	Index     index.Engine
	Graph     *linkgraph.Graph
	Recrawl   *render.RecrawlQueue
	Store     *storage.Store
	Logger    *slog.Logger

	RespectRobots       bool
	MaxCandidates       int
	RenderBudget        time.Duration
	RenderSimulatedCost time.Duration
	UserAgent           string

	mu       sync.Mutex
	cond     *sync.Cond
	queue    []string
	inflight map[string]bool
}

// New constructs a Worker. Call Run once in its own goroutine to start
// draining the queue.
func New(sched *scheduler.Scheduler, t *transport.Client, eng index.Engine, graph *linkgraph.Graph, recrawl *render.RecrawlQueue, store *storage.Store, logger *slog.Logger) *Worker {
	w := &Worker{
		Scheduler: sched,
		Transport: t,
		Index:     eng,
		Graph:     graph,
		Recrawl:   recrawl,
		Store:     store,
		Logger:    logger,
		inflight:  map[string]bool{},
	}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Enqueue lowercases domain and hands it to the worker goroutine unless
// it is already in flight, per §4.11's intake rule.
func (w *Worker) Enqueue(domain string) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight[domain] {
		return
	}
	w.inflight[domain] = true
	w.queue = append(w.queue, domain)
	w.cond.Signal()
}

// Run drains the queue until ctx is cancelled, processing one domain at
// a time on the calling goroutine.
func (w *Worker) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		w.mu.Lock()
		w.cond.Broadcast()
		w.mu.Unlock()
	}()

	for {
		w.mu.Lock()
		for len(w.queue) == 0 && ctx.Err() == nil {
			w.cond.Wait()
		}
		if len(w.queue) == 0 {
			w.mu.Unlock()
			return
		}
		domain := w.queue[0]
		w.queue = w.queue[1:]
		w.mu.Unlock()

		w.processDomain(ctx, domain)

		w.mu.Lock()
		delete(w.inflight, domain)
		w.mu.Unlock()
	}
}

func (w *Worker) userAgent() string {
	if w.UserAgent != "" {
		return w.UserAgent
	}
	return "gurtd-crawler/1.0"
}
