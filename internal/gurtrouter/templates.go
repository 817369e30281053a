package gurtrouter

import (
	"fmt"
	"html"
	"strings"

	"github.com/gurted/gurtd/internal/rescore"
)

// Inline fallbacks for the static UI, used only when AssetsDir has no
// corresponding file on disk. The static site itself is an external
// collaborator per §1 — these exist so the router degrades gracefully
// rather than failing when assets haven't been deployed.
const (
	fallbackIndexHTML = `<!doctype html><html><head><title>gurted search</title></head>` +
		`<body><h1>gurted</h1><form action="/search" method="get">` +
		`<input name="q" type="text"><button type="submit">search</button></form>` +
		`<p><a href="/domains">submit a domain</a></p></body></html>`

	fallbackSearchHTML = `<!doctype html><html><head><title>search</title></head>` +
		`<body><form action="/search" method="get">` +
		`<input name="q" type="text"><button type="submit">search</button></form></body></html>`

	fallbackDomainsHTML = `<!doctype html><html><head><title>submit a domain</title></head>` +
		`<body><h1>submit a domain</h1><p>POST { "domain": "example.gurt" } to /api/sites</p></body></html>`
)

// renderResultsHTML builds the server-side rendered results page for
// GET /search?q=..., per §4.12.
func renderResultsHTML(q string, results []rescore.Result) string {
	var b strings.Builder
	b.WriteString("<!doctype html><html><head><title>search results for ")
	b.WriteString(html.EscapeString(q))
	b.WriteString("</title></head><body><h1>results for \"")
	b.WriteString(html.EscapeString(q))
	b.WriteString("\"</h1>")
	if len(results) == 0 {
		b.WriteString("<p>no results</p>")
	} else {
		b.WriteString("<ol>")
		for _, res := range results {
			fmt.Fprintf(&b, `<li><a href=%q>%s</a> (%.4f)</li>`,
				res.URL, html.EscapeString(res.Title), res.Score)
		}
		b.WriteString("</ol>")
	}
	b.WriteString("</body></html>")
	return b.String()
}
