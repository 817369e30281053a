// Package linkgraph builds the adjacency model from crawled pages'
// outbound links, runs PageRank over it, and derives trust from CNAME
// chain depth, feeding the authority store internal/rescore consults.
package linkgraph

import "strings"

// Graph is an adjacency mapping node -> outbound link list. Sinks
// (nodes with no outbound links that are still linked to) are
// materialized as keys with an empty list, per §3.
type Graph struct {
	adjacency map[string][]string
}

// New builds an empty graph.
func New() *Graph {
	return &Graph{adjacency: make(map[string][]string)}
}

// AddPage records src's outbound links to dsts, creating sink entries
// for any destination not already a key.
func (g *Graph) AddPage(src string, dsts []string) {
	if _, ok := g.adjacency[src]; !ok {
		g.adjacency[src] = nil
	}
	g.adjacency[src] = append(g.adjacency[src], dsts...)
	for _, d := range dsts {
		if _, ok := g.adjacency[d]; !ok {
			g.adjacency[d] = nil
		}
	}
}

// Nodes returns every node in the graph, including sinks.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.adjacency))
	for n := range g.adjacency {
		out = append(out, n)
	}
	return out
}

// Out returns node's outbound links, or nil if it has none.
func (g *Graph) Out(node string) []string {
	return g.adjacency[node]
}

// ExtractHrefs pulls href target values out of anchor tags with a
// naive linear scan — the same acknowledged-limitation philosophy as
// internal/render's script stripper: no HTML tokenizer, just
// substring scanning for `href="..."` / `href='...'`.
func ExtractHrefs(html string) []string {
	var out []string
	lower := strings.ToLower(html)
	pos := 0
	for {
		idx := strings.Index(lower[pos:], "href=")
		if idx < 0 {
			break
		}
		idx += pos + len("href=")
		if idx >= len(html) {
			break
		}
		quote := html[idx]
		if quote != '"' && quote != '\'' {
			pos = idx
			continue
		}
		end := strings.IndexByte(html[idx+1:], quote)
		if end < 0 {
			break
		}
		end += idx + 1
		href := strings.TrimSpace(html[idx+1 : end])
		if href != "" {
			out = append(out, href)
		}
		pos = end + 1
	}
	return out
}
