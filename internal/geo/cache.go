package geo

import (
	"fmt"
	"sync"
)

// CachedRegion wraps a Region with an in-memory LRU cache over containment
// results. Best tracks revisit the same 0.1-degree grid points constantly, so
// the hit rate on a full archive run is high.
type CachedRegion struct {
	inner Region
	cache *lruCache
}

// NewCachedRegion creates a cache decorator around a region predicate.
func NewCachedRegion(inner Region, maxEntries int) *CachedRegion {
	return &CachedRegion{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedRegion) Name() string { return c.inner.Name() }

func (c *CachedRegion) Contains(lat, lon float64) bool {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if result, ok := c.cache.get(key); ok {
		return result
	}
	result := c.inner.Contains(lat, lon)
	c.cache.put(key, result)
	return result
}

// lruCache is a simple thread-safe LRU cache for containment results.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value bool
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
