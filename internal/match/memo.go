package match

import (
	"container/list"
	"sync"
	"time"
)

// MemoCache is a bounded LRU for repeated sub-computations inside a batch.
// Keys carry the student fingerprint, so entries never leak across
// students. Safe for concurrent use; inject one per batch, or document a
// shared instance at the call site.
type MemoCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
	hits     uint64
	misses   uint64

	now func() time.Time // overridden in tests
}

type memoEntry struct {
	key     string
	value   SubjectMatch
	expires time.Time // zero when no TTL
}

// NewMemoCache creates a cache holding at most capacity entries, each
// living at most ttl (0 disables expiry). Eviction is strict LRU.
func NewMemoCache(capacity int, ttl time.Duration) *MemoCache {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
		now:      time.Now,
	}
}

// Get returns the cached match for key, marking it most recently used.
func (c *MemoCache) Get(key string) (SubjectMatch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return SubjectMatch{}, false
	}
	entry := el.Value.(*memoEntry)
	if !entry.expires.IsZero() && c.now().After(entry.expires) {
		c.order.Remove(el)
		delete(c.entries, key)
		c.misses++
		return SubjectMatch{}, false
	}
	c.order.MoveToFront(el)
	c.hits++
	return entry.value, true
}

// Put stores a match for key, evicting the least recently used entry when
// full.
func (c *MemoCache) Put(key string, value SubjectMatch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expires time.Time
	if c.ttl > 0 {
		expires = c.now().Add(c.ttl)
	}

	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*memoEntry)
		entry.value = value
		entry.expires = expires
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*memoEntry).key)
		}
	}
	c.entries[key] = c.order.PushFront(&memoEntry{key: key, value: value, expires: expires})
}

// Len is the current entry count.
func (c *MemoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns hit and miss counters since creation.
func (c *MemoCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
