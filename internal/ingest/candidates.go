package ingest

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/gurted/gurtd/internal/protocol"
	"github.com/gurted/gurtd/internal/robots"
)

// candidateURLs composes and normalizes the candidate list per §4.11
// step 1: the domain root plus its sitemap's <loc> entries, normalized,
// sorted, deduplicated, capped, and — when RespectRobots is set —
// filtered against the domain's robots policy.
func (w *Worker) candidateURLs(ctx context.Context, domain string) ([]string, robots.Policy) {
	var policy robots.Policy
	if w.RespectRobots {
		if resp, err := w.Transport.Fetch(ctx, "gurt://"+domain+"/robots.txt"); err == nil && resp.Status == protocol.StatusOK {
			policy = robots.Parse(string(resp.Body))
		}
	}

	var locs []string
	if resp, err := w.Transport.Fetch(ctx, "gurt://"+domain+"/sitemap.xml"); err == nil && resp.Status == protocol.StatusOK {
		locs = robots.ExtractLocs(string(resp.Body))
	}
	normalizedLocs := make([]string, 0, len(locs))
	for _, loc := range locs {
		normalizedLocs = append(normalizedLocs, normalizeCandidate(loc, domain))
	}

	all := append([]string{"gurt://" + domain + "/"}, normalizedLocs...)
	all = dedupSorted(all)
	ordered := robots.OrderCandidates(all, normalizedLocs)

	if w.RespectRobots {
		filtered := ordered[:0]
		for _, c := range ordered {
			if policy.IsAllowed(w.userAgent(), pathOf(c)) {
				filtered = append(filtered, c)
			}
		}
		ordered = filtered
	}

	max := w.MaxCandidates
	if max <= 0 {
		max = maxCandidatesDefault
	}
	if len(ordered) > max {
		ordered = ordered[:max]
	}
	return ordered, policy
}

// normalizeCandidate applies §4.11's three-way rule: absolute overlay
// URLs pass through verbatim, path-absolute entries are prefixed with
// the domain, and everything else is prefixed and /-joined.
func normalizeCandidate(entry, domain string) string {
	if strings.HasPrefix(entry, "gurt://") {
		return entry
	}
	if strings.HasPrefix(entry, "/") {
		return "gurt://" + domain + entry
	}
	return "gurt://" + domain + "/" + strings.TrimPrefix(entry, "/")
}

func dedupSorted(urls []string) []string {
	sort.Strings(urls)
	out := urls[:0]
	var prev string
	first := true
	for _, u := range urls {
		if !first && u == prev {
			continue
		}
		out = append(out, u)
		prev = u
		first = false
	}
	return out
}

func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
