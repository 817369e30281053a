package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	c := New(time.Minute, 8)
	c.Put("rust", []byte(`{"hits":[]}`))
	v, ok := c.Get("rust")
	require.True(t, ok)
	assert.Equal(t, `{"hits":[]}`, string(v))
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	c := New(10*time.Millisecond, 8)
	c.Put("rust", []byte("x"))
	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get("rust")
	assert.False(t, ok)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(time.Minute, 2)
	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))
	c.Get("a")
	c.Put("c", []byte("3"))

	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted as the least recently used")
	_, ok = c.Get("a")
	assert.True(t, ok)
}
