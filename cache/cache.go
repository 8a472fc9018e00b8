// Package cache provides a generic, thread-safe get-or-populate-once cache.
package cache

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic concurrent cache with get-or-populate-once semantics.
// It is unbounded and read-mostly: entries are computed at most once per key
// under concurrent access and are never evicted or clobbered. This matches
// the lifetime of process-wide rule lists, which are populated lazily, once
// per distinct shape descriptor.
type Cache[K comparable, V any] struct {
	entries sync.Map // map[K]V
	group   singleflight.Group

	// Metrics (lock-free using atomics)
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates an empty Cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{}
}

// Get retrieves a value from the cache.
// Returns the value and true if present, zero value and false otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if v, ok := c.entries.Load(key); ok {
		c.hits.Add(1)
		return v.(V), true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// GetOrCompute returns the cached value for key, computing and storing it
// via fn on first use. Concurrent callers for the same key share a single
// computation; an error from fn is returned to every waiter and nothing is
// stored, so a later call retries.
func (c *Cache[K, V]) GetOrCompute(key K, fn func() (V, error)) (V, error) {
	if v, ok := c.entries.Load(key); ok {
		c.hits.Add(1)
		return v.(V), nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(flightKey(key), func() (any, error) {
		// Re-check: a previous flight may have stored the value already.
		if v, ok := c.entries.Load(key); ok {
			return v, nil
		}
		computed, err := fn()
		if err != nil {
			return nil, err
		}
		actual, _ := c.entries.LoadOrStore(key, computed)
		return actual, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// flightKey derives the singleflight key for a cache key. Pointer-shaped
// keys are keyed by address so that distinct, structurally equal keys never
// share a flight; everything else uses the value's formatted form.
func flightKey[K comparable](key K) string {
	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Map, reflect.Func, reflect.UnsafePointer:
		return fmt.Sprintf("0x%x", rv.Pointer())
	}
	return fmt.Sprintf("%v", key)
}

// Len returns the current number of cached entries.
func (c *Cache[K, V]) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
}

// Range calls fn for each cached entry.
// If fn returns false, iteration stops.
func (c *Cache[K, V]) Range(fn func(key K, value V) bool) {
	c.entries.Range(func(k, v any) bool {
		return fn(k.(K), v.(V))
	})
}

// Stats holds cache statistics.
type Stats struct {
	Size    int
	Hits    uint64
	Misses  uint64
	HitRate float64
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Size:    c.Len(),
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
	}
}
