package index

import (
	"sort"
	"sync"
)

type indexedDoc struct {
	doc      Document
	termFreq map[string]int
	length   int
}

// memoryEngine is the in-memory BM25 variant. Documents move through
// three stages, matching the add/commit/refresh separation §4.8 names:
// staged (added, not yet durable), committed (durable, not yet
// searchable), and live (the snapshot Search reads). Refresh computes
// the per-term document frequencies from committed once, rather than
// recomputing per query; there is no postings list, so Search scans
// every live document.
type memoryEngine struct {
	mu sync.RWMutex

	staged    []Document
	committed []indexedDoc

	live      []indexedDoc
	docFreq   map[string]int
	avgDocLen float64
}

func newMemoryEngine() *memoryEngine {
	return &memoryEngine{}
}

func (e *memoryEngine) Name() string { return "memory" }

func (e *memoryEngine) Add(doc Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.staged = append(e.staged, doc)
	return nil
}

// Commit makes staged additions durable by folding them into the
// committed set, without yet exposing them to Search.
func (e *memoryEngine) Commit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, doc := range e.staged {
		e.committed = append(e.committed, analyzeDoc(doc))
	}
	e.staged = nil
	return nil
}

// Refresh exposes every committed document to Search by rebuilding the
// term-document-frequency table and average length used by BM25.
func (e *memoryEngine) Refresh() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	live := make([]indexedDoc, len(e.committed))
	copy(live, e.committed)

	docFreq := make(map[string]int)
	var totalLen int
	for _, d := range live {
		totalLen += d.length
		seen := make(map[string]struct{}, len(d.termFreq))
		for term := range d.termFreq {
			if _, ok := seen[term]; !ok {
				docFreq[term]++
				seen[term] = struct{}{}
			}
		}
	}
	avg := 0.0
	if len(live) > 0 {
		avg = float64(totalLen) / float64(len(live))
	}

	e.live = live
	e.docFreq = docFreq
	e.avgDocLen = avg
	return nil
}

func analyzeDoc(doc Document) indexedDoc {
	tokens := append(Analyze(doc.Title), Analyze(doc.Content)...)
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return indexedDoc{doc: doc, termFreq: tf, length: len(tokens)}
}

func (e *memoryEngine) Search(terms []string, filter Filter, page, size int) ([]Hit, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	if len(terms) == 0 {
		return []Hit{}, nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	type scored struct {
		hit   Hit
		score float64
	}
	var candidates []scored
	for _, d := range e.live {
		if !matchesFilter(d.doc, filter) {
			continue
		}
		score := bm25Score(terms, d.termFreq, d.length, e.avgDocLen, e.docFreq, len(e.live))
		if score <= 0 {
			continue
		}
		candidates = append(candidates, scored{
			hit: Hit{
				Title:     d.doc.Title,
				URL:       d.doc.URL,
				Domain:    d.doc.Domain,
				FetchTime: d.doc.FetchTime,
				Score:     score,
			},
			score: score,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	offset := (page - 1) * size
	if offset >= len(candidates) {
		return []Hit{}, nil
	}
	end := offset + size
	if end > len(candidates) {
		end = len(candidates)
	}
	out := make([]Hit, 0, end-offset)
	for _, c := range candidates[offset:end] {
		out = append(out, c.hit)
	}
	return out, nil
}

func matchesFilter(doc Document, filter Filter) bool {
	if filter.Site != "" && doc.Domain != filter.Site {
		return false
	}
	if filter.Filetype != "" {
		ext := urlExtension(doc.URL)
		if ext != filter.Filetype {
			return false
		}
	}
	return true
}

func urlExtension(url string) string {
	dot := -1
	for i := len(url) - 1; i >= 0; i-- {
		if url[i] == '/' {
			break
		}
		if url[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 || dot == len(url)-1 {
		return ""
	}
	return url[dot+1:]
}
