// Package render classifies fetched documents as static or dynamic and
// performs the bounded, naive script-stripping "render" pass of §4.7.
package render

import (
	"strings"
	"time"
)

// Mode is the render_mode stored alongside an indexed document.
type Mode string

const (
	ModeStatic   Mode = "static"
	ModeRendered Mode = "rendered"
)

// Result is the outcome of Render: the body to index, the mode it was
// indexed under, and whether the render budget was exceeded.
type Result struct {
	Body     string
	Mode     Mode
	TimedOut bool
	Reason   string
}

const scriptNeighborhoodWindow = 200

// IsDynamic reports whether html should go through the render pass: a
// <script tag whose surrounding window contains "lua", or the literal
// substring "network.fetch(".
func IsDynamic(html string) bool {
	lower := strings.ToLower(html)
	if strings.Contains(lower, "network.fetch(") {
		return true
	}
	pos := 0
	for {
		idx := strings.Index(lower[pos:], "<script")
		if idx < 0 {
			return false
		}
		idx += pos
		start := idx - scriptNeighborhoodWindow
		if start < 0 {
			start = 0
		}
		end := idx + scriptNeighborhoodWindow
		if end > len(lower) {
			end = len(lower)
		}
		if strings.Contains(lower[start:end], "lua") {
			return true
		}
		pos = idx + len("<script")
	}
}

// Render performs the bounded render-once pass. simulatedCost models
// the time a real Lua-script execution would take; budget is the time
// allotted. When simulatedCost exceeds budget the original html is
// returned unchanged with render_mode "static" and TimedOut true — the
// caller is expected to enqueue a re-crawl. Otherwise every
// <script>...</script> block is stripped (an unclosed tag terminates
// the rest of the document) and a marker comment is appended.
func Render(html string, simulatedCost, budget time.Duration) Result {
	if !IsDynamic(html) {
		return Result{Body: html, Mode: ModeStatic}
	}
	if simulatedCost > budget {
		return Result{Body: html, Mode: ModeStatic, TimedOut: true, Reason: dynamicReason(html)}
	}
	stripped := stripScripts(html)
	return Result{Body: stripped + "<!-- rendered -->", Mode: ModeRendered}
}

// dynamicReason names which IsDynamic trigger fired, so a timed-out
// re-crawl entry records why the page was considered dynamic in the
// first place.
func dynamicReason(html string) string {
	if strings.Contains(strings.ToLower(html), "network.fetch(") {
		return "NetworkFetch"
	}
	return "LuaScript"
}

func stripScripts(html string) string {
	lower := strings.ToLower(html)
	var b strings.Builder
	pos := 0
	for {
		openIdx := strings.Index(lower[pos:], "<script")
		if openIdx < 0 {
			b.WriteString(html[pos:])
			break
		}
		openIdx += pos
		b.WriteString(html[pos:openIdx])

		closeIdx := strings.Index(lower[openIdx:], "</script>")
		if closeIdx < 0 {
			// Unclosed tag terminates the rest of the document, per §4.7.
			break
		}
		pos = openIdx + closeIdx + len("</script>")
	}
	return b.String()
}
