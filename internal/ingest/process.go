package ingest

import (
	"context"
	"strings"
	"time"

	"github.com/gurted/gurtd/internal/index"
	"github.com/gurted/gurtd/internal/linkgraph"
	"github.com/gurted/gurtd/internal/protocol"
	"github.com/gurted/gurtd/internal/render"
)

// processDomain runs the full §4.11 lifecycle for one domain: enumerate
// candidates, fetch+render+index each in turn under the scheduler's
// gates, commit/refresh once, drain the re-crawl queue, and mark the
// domain ready with bounded retry.
func (w *Worker) processDomain(ctx context.Context, domain string) {
	candidates, policy := w.candidateURLs(ctx, domain)
	if len(candidates) == 0 {
		if w.Logger != nil {
			w.Logger.Warn("no candidate urls", "domain", domain)
		}
		return
	}

	var crawlDelay time.Duration
	if d, ok := policy.CrawlDelay(w.userAgent()); ok && d > 0 {
		crawlDelay = time.Duration(d * float64(time.Second))
	}

	for _, candidateURL := range candidates {
		if ctx.Err() != nil {
			break
		}
		release, err := w.Scheduler.Acquire(ctx, domain, crawlDelay)
		if err != nil {
			continue
		}
		w.fetchAndIndex(ctx, domain, candidateURL)
		release()
	}

	if w.Index != nil {
		if err := w.Index.Commit(); err != nil && w.Logger != nil {
			w.Logger.Warn("index commit failed", "domain", domain, "err", err)
		}
		if err := w.Index.Refresh(); err != nil && w.Logger != nil {
			w.Logger.Warn("index refresh failed", "domain", domain, "err", err)
		}
	}
	w.drainRecrawlLog()
	w.markReady(domain)
}

func (w *Worker) fetchAndIndex(ctx context.Context, domain, rawURL string) {
	resp, err := w.Transport.Fetch(ctx, rawURL)
	if err != nil {
		if w.Logger != nil {
			w.Logger.Debug("fetch failed", "url", rawURL, "err", err)
		}
		return
	}
	if resp.Status != protocol.StatusOK {
		return
	}
	if ct, ok := resp.Headers.Get("content-type"); ok && ct != "" && !strings.Contains(strings.ToLower(ct), "html") {
		return
	}

	body := string(resp.Body)
	title := extractTitle(body, domain)

	budget := w.RenderBudget
	if budget <= 0 {
		budget = renderBudgetDefault
	}
	result := render.Render(body, w.RenderSimulatedCost, budget)
	if result.TimedOut && w.Recrawl != nil {
		w.Recrawl.Push(rawURL, result.Reason)
	}

	if w.Graph != nil {
		w.Graph.AddPage(rawURL, linkgraph.ExtractHrefs(result.Body))
	}

	if w.Index == nil {
		return
	}
	doc := index.Document{
		URL:        rawURL,
		Domain:     domain,
		Title:      title,
		Content:    stripTags(result.Body),
		FetchTime:  time.Now().Unix(),
		Language:   "en",
		RenderMode: string(result.Mode),
	}
	if err := w.Index.Add(doc); err != nil && w.Logger != nil {
		w.Logger.Warn("index add failed", "url", rawURL, "err", err)
	}
}

// extractTitle pulls the text of the first <title>…</title>, collapsing
// internal whitespace, falling back to domain per §4.11 step 2.
func extractTitle(html, domain string) string {
	lower := strings.ToLower(html)
	start := strings.Index(lower, "<title")
	if start < 0 {
		return domain
	}
	tagEnd := strings.Index(lower[start:], ">")
	if tagEnd < 0 {
		return domain
	}
	contentStart := start + tagEnd + 1
	end := strings.Index(lower[contentStart:], "</title>")
	if end < 0 {
		return domain
	}
	collapsed := strings.TrimSpace(strings.Join(strings.Fields(html[contentStart:contentStart+end]), " "))
	if collapsed == "" {
		return domain
	}
	return collapsed
}

// stripTags drops every <...> tag, a naive linear scan in the same
// acknowledged-limitation spirit as the render pipeline's script
// stripper — see design notes §9.
func stripTags(html string) string {
	var b strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (w *Worker) drainRecrawlLog() {
	if w.Recrawl == nil {
		return
	}
	for {
		entry, ok := w.Recrawl.Pop()
		if !ok {
			return
		}
		if w.Logger != nil {
			w.Logger.Info("recrawl queued", "url", entry.URL, "reason", entry.Reason)
		}
	}
}

// markReady marks domain ready in the storage adapter with up to three
// attempts and exponential backoff starting at 100ms, per §4.11 step 4.
func (w *Worker) markReady(domain string) {
	if w.Store == nil {
		return
	}
	backoff := statusMarkBackoff
	var lastErr error
	for attempt := 0; attempt < statusMarkAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}
		if err := w.Store.SetStatus(domain, "ready"); err != nil {
			lastErr = err
			continue
		}
		return
	}
	if lastErr != nil && w.Logger != nil {
		w.Logger.Warn("status mark exhausted retries", "domain", domain, "err", lastErr)
	}
}
