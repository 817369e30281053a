// Package resolver implements the GURT domain resolver: a TTL-cached,
// CNAME-chasing client speaking the overlay protocol's /resolve-full
// endpoint, plus a localhost bypass and an OS-resolution fallback.
package resolver

import (
	"container/list"
	"sync"
	"time"
)

// entry holds a cached address with LRU tracking. Negative results are
// never cached, per §4.3, so there is no entry-type discrimination here
// the way the teacher's DNS cache needs for NXDOMAIN/SERVFAIL.
type entry struct {
	addr    string
	expires time.Time
	elem    *list.Element
}

// TTLCache is a thread-safe TTL cache mapping a domain name to its
// resolved address. Grounded on the teacher's generic
// resolvers.TTLCache[K,V] (container/list LRU + map), simplified to the
// single positive-entry-type, fixed-60s-TTL shape spec.md §4.3 and §3
// describe.
type TTLCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	lru      *list.List
	data     map[string]*entry
	maxItems int
}

// NewTTLCache creates a cache with the given TTL and a soft capacity
// (oldest entries are evicted once exceeded).
func NewTTLCache(ttl time.Duration, maxItems int) *TTLCache {
	if maxItems <= 0 {
		maxItems = 4096
	}
	return &TTLCache{
		ttl:      ttl,
		lru:      list.New(),
		data:     map[string]*entry{},
		maxItems: maxItems,
	}
}

// Get returns the cached address for name, if present and unexpired.
func (c *TTLCache) Get(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[name]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expires) {
		c.lru.Remove(e.elem)
		delete(c.data, name)
		return "", false
	}
	c.lru.MoveToBack(e.elem)
	return e.addr, true
}

// Set stores addr under name with the cache's configured TTL.
func (c *TTLCache) Set(name, addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := time.Now().Add(c.ttl)
	if existing, ok := c.data[name]; ok {
		existing.addr = addr
		existing.expires = expires
		c.lru.MoveToBack(existing.elem)
		return
	}
	e := &entry{addr: addr, expires: expires}
	e.elem = c.lru.PushBack(name)
	c.data[name] = e

	for len(c.data) > c.maxItems {
		front := c.lru.Front()
		if front == nil {
			break
		}
		key := front.Value.(string)
		c.lru.Remove(front)
		delete(c.data, key)
	}
}
