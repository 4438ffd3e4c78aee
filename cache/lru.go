// Package cache provides a generic least-recently-used cache with a hard
// capacity and an eviction callback.
//
// LRU is owned by a single goroutine, normally the render thread of a chart
// pane. It performs no locking; callers that share one across goroutines
// must serialize access themselves.
package cache

// DefaultCapacity is the capacity used when New is given a non-positive one.
const DefaultCapacity = 256

// Stats is a snapshot of cache counters.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries.
	Capacity int
	// Hits is the number of successful lookups.
	Hits uint64
	// Misses is the number of failed lookups.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), or 0 before the first lookup.
	HitRate float64
	// Evictions is the number of entries dropped to stay within capacity.
	Evictions uint64
}

// LRU is a fixed-capacity cache evicting the least recently used entry.
type LRU[K comparable, V any] struct {
	items    map[K]*node[K, V]
	order    list[K, V]
	capacity int
	onEvict  func(K, V)

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates an LRU holding at most capacity entries.
// onEvict, if non-nil, is called for every entry dropped by capacity
// pressure, Delete or Clear.
func New[K comparable, V any](capacity int, onEvict func(K, V)) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[K, V]{
		items:    make(map[K]*node[K, V], capacity),
		capacity: capacity,
		onEvict:  onEvict,
	}
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	n, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(n)
	return n.value, true
}

// Peek returns the value for key without touching recency or counters.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	n, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Set stores value under key, evicting the oldest entry when full.
// Replacing an existing value does not call onEvict.
func (c *LRU[K, V]) Set(key K, value V) {
	if n, ok := c.items[key]; ok {
		n.value = value
		c.order.moveToFront(n)
		return
	}
	n := &node[K, V]{key: key, value: value}
	c.items[key] = n
	c.order.pushFront(n)
	for c.order.len > c.capacity {
		c.evictOldest()
	}
}

// GetOrCreate returns the cached value or stores and returns create().
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	c.Set(key, v)
	return v
}

// Delete removes key and reports whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	n, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.unlink(n)
	delete(c.items, key)
	if c.onEvict != nil {
		c.onEvict(n.key, n.value)
	}
	return true
}

// Clear removes every entry, oldest first.
func (c *LRU[K, V]) Clear() {
	if c.onEvict != nil {
		for n := c.order.back(); n != nil; n = n.prev {
			c.onEvict(n.key, n.value)
		}
	}
	c.order.clear()
	clear(c.items)
}

// Keys returns the keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, c.order.len)
	for n := c.order.head; n != nil; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int { return c.order.len }

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int { return c.capacity }

// Stats returns the current counters.
func (c *LRU[K, V]) Stats() Stats {
	var rate float64
	if total := c.hits + c.misses; total > 0 {
		rate = float64(c.hits) / float64(total)
	}
	return Stats{
		Len:       c.order.len,
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		HitRate:   rate,
		Evictions: c.evictions,
	}
}

func (c *LRU[K, V]) evictOldest() {
	n := c.order.back()
	if n == nil {
		return
	}
	c.order.unlink(n)
	delete(c.items, n.key)
	c.evictions++
	if c.onEvict != nil {
		c.onEvict(n.key, n.value)
	}
}
