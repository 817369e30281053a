// Package query parses a raw search query into free-text terms and a
// {site, filetype} filter, per §3's "parsed query" schema.
package query

import (
	"strings"

	"github.com/gurted/gurtd/internal/index"
)

// Parsed is the ordered free-text terms plus the extracted filter.
type Parsed struct {
	Terms  []string
	Filter index.Filter
}

const (
	sitePrefix     = "site:"
	filetypePrefix = "filetype:"
)

// Parse splits raw on whitespace, lowercases every token, strips
// surrounding quotes, and pulls out site:/filetype: filters — last
// occurrence of each wins, per §3.
func Parse(raw string) Parsed {
	var p Parsed
	for _, field := range strings.Fields(raw) {
		tok := strings.ToLower(unquote(field))
		switch {
		case strings.HasPrefix(tok, sitePrefix):
			p.Filter.Site = strings.TrimPrefix(tok, sitePrefix)
		case strings.HasPrefix(tok, filetypePrefix):
			p.Filter.Filetype = strings.TrimPrefix(tok, filetypePrefix)
		case tok != "":
			p.Terms = append(p.Terms, tok)
		}
	}
	return p
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// AnalyzedTerms re-tokenizes the parsed free-text terms through the
// index engine's analyzer, per §4.8's search() step: the parsed terms
// are joined and re-split on non-alphanumeric boundaries with stopword
// filtering, so terms that still carry quote characters or other
// punctuation (Parse splits a quoted phrase on its spaces and strips
// only matching quote pairs) decompose into the same token shape
// document analysis produces.
func (p Parsed) AnalyzedTerms() []string {
	return index.Analyze(strings.Join(p.Terms, " "))
}

// NormalizeKey builds the hot-query cache key of §3: the lowercased
// terms joined by a non-space separator, in order, followed by
// "site=…" and "filetype=…" when present.
func (p Parsed) NormalizeKey() string {
	var b strings.Builder
	for i, t := range p.Terms {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(t)
	}
	if p.Filter.Site != "" {
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString("site=")
		b.WriteString(p.Filter.Site)
	}
	if p.Filter.Filetype != "" {
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString("filetype=")
		b.WriteString(p.Filter.Filetype)
	}
	return b.String()
}
