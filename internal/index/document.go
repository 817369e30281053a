// Package index implements the BM25-style full-text index: the
// seven-field document schema, the shared lowercase/split/stopword
// analyzer, and the Engine capability set (add/commit/refresh/search)
// with memory and no-op variants, per §4.8.
package index

// Document is the seven-field schema of §3/§4.8.
type Document struct {
	URL        string
	Domain     string
	Title      string
	Content    string
	FetchTime  int64
	Language   string
	RenderMode string
}

// Hit is one search result at the engine boundary: BM25-derived score,
// not yet combined with authority/trust/recency.
type Hit struct {
	Title     string
	URL       string
	Domain    string
	FetchTime int64
	Score     float64
}

// Filter narrows a search to documents whose domain or URL extension
// match, per the query path's site:/filetype: syntax. An empty field
// means "no constraint."
type Filter struct {
	Site     string
	Filetype string
}
