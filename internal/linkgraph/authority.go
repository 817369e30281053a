package linkgraph

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// AuthorityStore is the process-wide url -> score mapping in [0,1],
// guarded by a single mutex per §8's shared-resource convention.
type AuthorityStore struct {
	mu     sync.RWMutex
	scores map[string]float64
}

// NewAuthorityStore builds an empty store.
func NewAuthorityStore() *AuthorityStore {
	return &AuthorityStore{scores: make(map[string]float64)}
}

// Get returns the stored score for url, or 0 if absent, matching the
// rescorer's "authority_store[url] or 0" lookup.
func (s *AuthorityStore) Get(url string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scores[url]
}

// Set stores score for url, clamped to [0,1].
func (s *AuthorityStore) Set(url string, score float64) {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[url] = score
}

// URLs returns every url currently holding a score, unsorted.
func (s *AuthorityStore) URLs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	urls := make([]string, 0, len(s.scores))
	for u := range s.scores {
		urls = append(urls, u)
	}
	return urls
}

// ReplaceAll swaps in a freshly computed rank mapping (e.g. the output
// of PageRank), atomically from readers' point of view.
func (s *AuthorityStore) ReplaceAll(scores map[string]float64) {
	clamped := make(map[string]float64, len(scores))
	for url, score := range scores {
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		clamped[url] = score
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = clamped
}

// ToJSON renders the store as canonical JSON per §3: keys sorted
// ascending, values formatted fixed-precision.
func (s *AuthorityStore) ToJSON() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.scores))
	for k := range s.scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q:%s", k, strconv.FormatFloat(s.scores[k], 'f', 6, 64))
	}
	b.WriteByte('}')
	return b.String()
}

// FromJSON parses a snapshot previously produced by ToJSON (or any
// equivalent flat url->score JSON object) and replaces the store's
// contents.
func (s *AuthorityStore) FromJSON(data []byte) error {
	var parsed map[string]float64
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	s.ReplaceAll(parsed)
	return nil
}
