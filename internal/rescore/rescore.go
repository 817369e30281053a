// Package rescore combines engine BM25 hits with link authority,
// domain trust, and recency into a single ranked result, per §4.8's
// rescoring formula.
package rescore

import (
	"math"
	"sort"
	"time"

	"github.com/gurted/gurtd/internal/index"
)

const (
	weightBM25     = 0.6
	weightAuthority = 0.2
	weightTrust     = 0.1
	weightRecency   = 0.1

	recencyHalfLife = 7 * 24 * time.Hour
	maxCNAMEDepth   = 5
)

// Result is the rescorer's output item: title, url, and the final
// combined score.
type Result struct {
	Title string
	URL   string
	Score float64
}

// AuthorityLookup answers the link-authority score in [0,1] for a URL,
// defaulting to 0 when absent.
type AuthorityLookup func(url string) float64

// Rescore combines hits per §4.8: normalizes BM25 by the maximum
// observed score, looks up authority, derives trust from CNAME depth,
// computes recency from fetch_time, combines with the fixed weights,
// and returns the top-K by descending score (ties broken by original
// engine order).
func Rescore(hits []index.Hit, authority AuthorityLookup, cnameDepth int, now time.Time, topK int) []Result {
	if len(hits) == 0 {
		return []Result{}
	}
	maxBM := 1e-6
	for _, h := range hits {
		if h.Score > maxBM {
			maxBM = h.Score
		}
	}

	trust := 0.0
	if cnameDepth >= 0 && cnameDepth <= maxCNAMEDepth {
		trust = 1 / float64(1+cnameDepth)
	}

	type ranked struct {
		result Result
		order  int
	}
	out := make([]ranked, len(hits))
	for i, h := range hits {
		bm := h.Score / maxBM
		auth := 0.0
		if authority != nil {
			auth = authority(h.URL)
		}
		age := now.Sub(time.Unix(h.FetchTime, 0)).Seconds()
		recency := math.Pow(0.5, age/recencyHalfLife.Seconds())

		combined := weightBM25*bm + weightAuthority*auth + weightTrust*trust + weightRecency*recency
		out[i] = ranked{result: Result{Title: h.Title, URL: h.URL, Score: combined}, order: i}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].result.Score != out[j].result.Score {
			return out[i].result.Score > out[j].result.Score
		}
		return out[i].order < out[j].order
	})

	if topK > 0 && topK < len(out) {
		out = out[:topK]
	}
	results := make([]Result, len(out))
	for i, r := range out {
		results[i] = r.result
	}
	return results
}
