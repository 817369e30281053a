package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsDynamicDetectsLuaScriptNeighborhood(t *testing.T) {
	assert.True(t, IsDynamic(`<html><script>-- lua code here</script></html>`))
}

func TestIsDynamicDetectsNetworkFetch(t *testing.T) {
	assert.True(t, IsDynamic(`<html><body onload="network.fetch('/x')"></body></html>`))
}

func TestIsDynamicFalseForPlainHTML(t *testing.T) {
	assert.False(t, IsDynamic(`<html><body><p>hello</p></body></html>`))
}

func TestRenderStripsScriptBlocks(t *testing.T) {
	html := `<html><script>lua stuff</script><p>content</p></html>`
	res := Render(html, 10*time.Millisecond, 50*time.Millisecond)
	assert.Equal(t, ModeRendered, res.Mode)
	assert.False(t, res.TimedOut)
	assert.NotContains(t, res.Body, "lua stuff")
	assert.Contains(t, res.Body, "<p>content</p>")
}

func TestRenderTimesOutOnExceededBudget(t *testing.T) {
	html := `<html><script>lua stuff</script></html>`
	res := Render(html, 100*time.Millisecond, 10*time.Millisecond)
	assert.True(t, res.TimedOut)
	assert.Equal(t, ModeStatic, res.Mode)
	assert.Equal(t, html, res.Body)
}

func TestRenderStaticPassesThroughUnchanged(t *testing.T) {
	html := `<html><p>static</p></html>`
	res := Render(html, 0, time.Second)
	assert.Equal(t, ModeStatic, res.Mode)
	assert.Equal(t, html, res.Body)
}

func TestRecrawlQueueFIFO(t *testing.T) {
	q := &RecrawlQueue{}
	q.Push("a.gurt", "timeout")
	q.Push("b.gurt", "timeout")
	assert.Equal(t, 2, q.Len())

	e, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, "a.gurt", e.URL)
	assert.Equal(t, 1, q.Len())
}
