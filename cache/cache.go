// Package cache implements a FIFO path-keyed wrapper as a separable
// concern outside the core: the core returns a *jpegexif.RawMetadata per
// call, and this package caches it by filename.
//
// Keying by filesystem path without stat-invalidation is a known
// staleness hazard: a file rewritten in place after being cached will
// keep returning the stale RawMetadata until evicted. This is
// documented, not silently patched over with a stat-on-every-lookup.
package cache

import (
	"container/list"
	"sync"

	"github.com/jmreyes/jpegexif"
)

// Cache is a fixed-capacity, FIFO-evicting map from file path to an
// already-built RawMetadata. The zero value is not usable; construct one
// with New. A Cache is safe for concurrent use via a single mutex - the
// core package itself holds no mutable state, so any host embedding it
// is free to pick its own concurrency discipline, and this is the
// simplest one that works for a cache sitting in front of it.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = oldest
}

type record struct {
	path string
	meta *jpegexif.RawMetadata
}

// New creates a Cache holding at most capacity entries. capacity <= 0
// means unbounded (eviction never triggers).
func New(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached RawMetadata for path, if present. It performs no
// filesystem access and never invalidates on its own - see the staleness
// hazard documented above.
func (c *Cache) Get(path string) (*jpegexif.RawMetadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[path]
	if !ok {
		return nil, false
	}
	return el.Value.(*record).meta, true
}

// Put inserts or replaces the cached RawMetadata for path. Replacing an
// existing entry does not move it to the back of the FIFO order - only
// insertion order matters for eviction, not recency of access, which is
// the defining property of FIFO over LRU.
func (c *Cache) Put(path string, meta *jpegexif.RawMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[path]; ok {
		el.Value.(*record).meta = meta
		return
	}

	el := c.order.PushBack(&record{path: path, meta: meta})
	c.entries[path] = el

	if c.capacity > 0 {
		for c.order.Len() > c.capacity {
			c.evictOldest()
		}
	}
}

// GetOrLoad returns the cached RawMetadata for path, loading and caching
// it via load on a miss. load is typically jpegexif.Read bound to a
// Config.
func (c *Cache) GetOrLoad(path string, load func(string) (*jpegexif.RawMetadata, error)) (*jpegexif.RawMetadata, error) {
	if meta, ok := c.Get(path); ok {
		return meta, nil
	}
	meta, err := load(path)
	if err != nil {
		return nil, err
	}
	c.Put(path, meta)
	return meta, nil
}

// Evict removes path from the cache, if present.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[path]; ok {
		c.order.Remove(el)
		delete(c.entries, path)
	}
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache) evictOldest() {
	oldest := c.order.Front()
	if oldest == nil {
		return
	}
	c.order.Remove(oldest)
	delete(c.entries, oldest.Value.(*record).path)
}
