package openflights

import (
	"context"
	"strings"
	"sync"

	"github.com/sykeriin/aerobrief/internal/domain"
)

// Lookup resolves an airport code to a reference record.
type Lookup interface {
	Lookup(ctx context.Context, code string) (domain.AirportRef, error)
}

// CachedLookup wraps a Lookup with an in-memory LRU cache. Airport
// reference data changes rarely, so cached records are served for the
// process lifetime.
type CachedLookup struct {
	inner Lookup
	cache *lruCache
}

// NewCachedLookup creates a cache decorator around an airport lookup.
func NewCachedLookup(inner Lookup, maxEntries int) *CachedLookup {
	return &CachedLookup{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

// Lookup serves from cache when possible. Fallback records are not cached
// so a code missing from a stale snapshot can recover on a later fetch.
func (c *CachedLookup) Lookup(ctx context.Context, code string) (domain.AirportRef, error) {
	key := strings.ToUpper(strings.TrimSpace(code))
	if airport, ok := c.cache.get(key); ok {
		return airport, nil
	}

	airport, err := c.inner.Lookup(ctx, key)
	if err != nil {
		return airport, err
	}
	if airport.Source != "fallback" {
		c.cache.put(key, airport)
	}
	return airport, nil
}

// lruCache is a simple thread-safe LRU cache for airport records.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.AirportRef
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.AirportRef, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.AirportRef{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.AirportRef) {
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
