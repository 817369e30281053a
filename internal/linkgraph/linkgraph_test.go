package linkgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHrefsFindsQuotedTargets(t *testing.T) {
	html := `<a href="https://a.gurt/1">one</a><a href='https://a.gurt/2'>two</a>`
	hrefs := ExtractHrefs(html)
	assert.Equal(t, []string{"https://a.gurt/1", "https://a.gurt/2"}, hrefs)
}

func TestPageRankSumsToApproximatelyOne(t *testing.T) {
	g := New()
	g.AddPage("a", []string{"b"})
	g.AddPage("b", []string{"a", "c"})
	g.AddPage("c", []string{"a"})

	ranks := PageRank(g)
	var total float64
	for _, r := range ranks {
		total += r
	}
	assert.InDelta(t, 1.0, total, 1e-6)
}

func TestPageRankRewardsInboundLinks(t *testing.T) {
	g := New()
	g.AddPage("popular", nil)
	g.AddPage("a", []string{"popular"})
	g.AddPage("b", []string{"popular"})
	g.AddPage("c", []string{"popular"})
	g.AddPage("lonely", nil)

	ranks := PageRank(g)
	assert.Greater(t, ranks["popular"], ranks["lonely"])
}

func TestTrustDecaysWithDepth(t *testing.T) {
	assert.Equal(t, 1.0, Trust(0))
	assert.InDelta(t, 0.5, Trust(1), 1e-9)
	assert.Equal(t, 0.0, Trust(6))
}

func TestAuthorityStoreToJSONSortedKeys(t *testing.T) {
	s := NewAuthorityStore()
	s.Set("https://b.gurt", 0.5)
	s.Set("https://a.gurt", 0.25)
	assert.Equal(t, `{"https://a.gurt":0.250000,"https://b.gurt":0.500000}`, s.ToJSON())
}

func TestAuthorityStoreRoundTrip(t *testing.T) {
	s := NewAuthorityStore()
	s.Set("https://a.gurt", 0.123456)
	data := s.ToJSON()

	s2 := NewAuthorityStore()
	require.NoError(t, s2.FromJSON([]byte(data)))
	assert.InDelta(t, 0.123456, s2.Get("https://a.gurt"), 1e-6)
}
