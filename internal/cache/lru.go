// Package cache provides a small thread-safe LRU cache used for shaped
// text runs and text layouts.
//
//	c := cache.New[string, *Layout](256)
//	l := c.GetOrCreate(key, func() *Layout { return build() })
package cache

import "sync"

// node is an entry in the recency list. The key is kept for eviction.
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// LRU is a fixed-capacity cache that evicts the least recently used entry.
// The zero value is not usable; call New.
type LRU[K comparable, V any] struct {
	mu         sync.Mutex
	entries    map[K]*node[K, V]
	head, tail *node[K, V]
	capacity   int

	hits, misses, evictions uint64
}

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// New returns an empty cache holding at most capacity entries.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[K, V]{entries: make(map[K]*node[K, V]), capacity: capacity}
}

// Get returns the cached value and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.moveToFront(n)
	return n.value, true
}

// Set stores value, evicting the oldest entry when full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

// GetOrCreate returns the cached value or stores and returns create().
// create runs under the lock, so concurrent callers never build the same
// key twice.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := c.entries[key]; ok {
		c.hits++
		c.moveToFront(n)
		return n.value
	}
	c.misses++
	v := create()
	c.set(key, v)
	return v
}

// Delete removes key and reports whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.entries[key]
	if ok {
		c.unlink(n)
		delete(c.entries, key)
	}
	return ok
}

// Clear drops every entry. Statistics are kept.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.head, c.tail = nil, nil
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats reports usage counters.
type Stats struct {
	Len, Capacity           int
	Hits, Misses, Evictions uint64
}

// Stats returns a snapshot of the counters.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Len: len(c.entries), Capacity: c.capacity,
		Hits: c.hits, Misses: c.misses, Evictions: c.evictions,
	}
}

// set requires c.mu.
func (c *LRU[K, V]) set(key K, value V) {
	if n, ok := c.entries[key]; ok {
		n.value = value
		c.moveToFront(n)
		return
	}
	for len(c.entries) >= c.capacity && c.tail != nil {
		old := c.tail
		c.unlink(old)
		delete(c.entries, old.key)
		c.evictions++
	}
	n := &node[K, V]{key: key, value: value}
	c.pushFront(n)
	c.entries[key] = n
}

func (c *LRU[K, V]) pushFront(n *node[K, V]) {
	n.prev, n.next = nil, c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *LRU[K, V]) moveToFront(n *node[K, V]) {
	if n == c.head {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

func (c *LRU[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
