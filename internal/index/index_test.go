package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBM25Ordering(t *testing.T) {
	e := newMemoryEngine()
	require.NoError(t, e.Add(Document{URL: "https://a.gurt/1", Domain: "a.gurt", Title: "rust rust", Content: "rust language"}))
	require.NoError(t, e.Add(Document{URL: "https://a.gurt/2", Domain: "a.gurt", Title: "rust", Content: "programming"}))
	require.NoError(t, e.Commit())
	require.NoError(t, e.Refresh())

	hits, err := e.Search(Analyze("RUST"), Filter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
	assert.Equal(t, "https://a.gurt/1", hits[0].URL)
}

func TestStopwordsOnlyQueryReturnsEmpty(t *testing.T) {
	e := newMemoryEngine()
	require.NoError(t, e.Add(Document{URL: "https://a.gurt/1", Title: "hello", Content: "world"}))
	require.NoError(t, e.Commit())
	require.NoError(t, e.Refresh())

	hits, err := e.Search(Analyze("the and of"), Filter{}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSiteFilterNarrowsResults(t *testing.T) {
	e := newMemoryEngine()
	require.NoError(t, e.Add(Document{URL: "https://a.gurt/1", Domain: "a.gurt", Title: "widgets", Content: "widgets"}))
	require.NoError(t, e.Add(Document{URL: "https://b.gurt/1", Domain: "b.gurt", Title: "widgets", Content: "widgets"}))
	require.NoError(t, e.Commit())
	require.NoError(t, e.Refresh())

	hits, err := e.Search(Analyze("widgets"), Filter{Site: "b.gurt"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "b.gurt", hits[0].Domain)
}

func TestUncommittedAddsNotSearchable(t *testing.T) {
	e := newMemoryEngine()
	require.NoError(t, e.Add(Document{URL: "https://a.gurt/1", Title: "widgets", Content: "widgets"}))
	// No Commit/Refresh yet.
	hits, err := e.Search(Analyze("widgets"), Filter{}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestNoopEngineNeverFails(t *testing.T) {
	e := newNoopEngine()
	require.NoError(t, e.Add(Document{URL: "x"}))
	require.NoError(t, e.Commit())
	require.NoError(t, e.Refresh())
	hits, err := e.Search([]string{"x"}, Filter{}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
