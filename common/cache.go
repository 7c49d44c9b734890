package common

import (
	"sync"
	"time"
)

// DefaultCacheTTL is applied when Set is called with a non-positive TTL.
// Five minutes matches how long profile-style data stays fresh enough
// for dashboard use.
const DefaultCacheTTL = 5 * time.Minute

// CacheRepository defines a minimal interface for a key/value cache with
// per-entry TTL. Each instance is keyed by a single concrete value type,
// so unrelated resources get separate stores instead of sharing one
// heterogeneous map.
//
// For example, you could back this with:
//   - an in-memory map (MemoryCache below)
//   - Redis
//   - or any other caching system
type CacheRepository[V any] interface {
	Get(key string) (value V, found bool)
	Set(key string, value V, ttl time.Duration)
	Remove(key string)
	Clear()
	IsExpired(key string) bool
}

// cacheEntry stores a value and the moment it was written.
type cacheEntry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

// MemoryCache is a map-backed CacheRepository. Entries expire lazily:
// an expired entry is evicted on the next Get rather than by a background
// sweeper. There is no capacity bound; entries live until they are
// overwritten, removed, cleared, or found expired on read.
type MemoryCache[V any] struct {
	mu      sync.Mutex
	entries map[string]cacheEntry[V]

	// now is swappable for deterministic expiry tests.
	now func() time.Time
}

// NewMemoryCache constructs an empty MemoryCache. Callers should inject the
// instance into whatever needs caching rather than sharing a package-level
// singleton.
func NewMemoryCache[V any]() *MemoryCache[V] {
	return &MemoryCache[V]{
		entries: make(map[string]cacheEntry[V]),
		now:     time.Now,
	}
}

// Get returns the stored value if present and unexpired. An expired entry is
// evicted as a side effect and reported as absent. Absence is a normal
// outcome, not an error.
func (c *MemoryCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	ent, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(ent.storedAt) >= ent.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return ent.value, true
}

// Set inserts or overwrites the entry, resetting its stored-at time to now.
// A non-positive ttl selects DefaultCacheTTL.
func (c *MemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[V]{
		value:    value,
		storedAt: c.now(),
		ttl:      ttl,
	}
}

// Remove deletes the entry if present; no-op if absent.
func (c *MemoryCache[V]) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear empties the entire store. Used for full invalidation, e.g. logout.
func (c *MemoryCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry[V])
}

// IsExpired reports expiry without the eviction side effect of Get.
// An absent key counts as expired (not validly cached).
func (c *MemoryCache[V]) IsExpired(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		return true
	}
	return c.now().Sub(ent.storedAt) >= ent.ttl
}

// Len returns the number of entries currently held, expired or not.
func (c *MemoryCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// SetNowForTest swaps the clock used for expiry checks.
func (c *MemoryCache[V]) SetNowForTest(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

var _ CacheRepository[any] = (*MemoryCache[any])(nil)
