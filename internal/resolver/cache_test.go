package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache(10*time.Millisecond, 8)
	c.Set("example.gurt", "10.0.0.1")

	addr, ok := c.Get("example.gurt")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", addr)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("example.gurt")
	assert.False(t, ok, "expired entry must not be returned")
}

func TestTTLCacheEvictsOldestOverCapacity(t *testing.T) {
	c := NewTTLCache(time.Minute, 2)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLocalResolverBypassesSentinel(t *testing.T) {
	addr, err := LocalResolver{}.Resolve(context.Background(), "localhost")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", addr)
}
