package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/skillscout/internal/core/domain"
	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
)

// Ensure ResultCache implements the interface.
var _ driven.ResultCache = (*ResultCache)(nil)

// DefaultMaxEntries bounds the cache when no capacity is given.
const DefaultMaxEntries = 256

// cacheEntry is one cached discovery result.
type cacheEntry struct {
	key       string
	resources []domain.Resource
	expiresAt time.Time
}

// ResultCache is an in-memory LRU cache of discovery results with per-entry
// expiry. Expired entries are dropped lazily on access; when full, the least
// recently used entry is evicted.
type ResultCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List // front is most recently used
	now      func() time.Time
}

// NewResultCache creates a cache holding at most capacity entries.
func NewResultCache(capacity int) *ResultCache {
	if capacity <= 0 {
		capacity = DefaultMaxEntries
	}
	return &ResultCache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		now:      time.Now,
	}
}

// SetClock replaces the clock used for expiry.
func (c *ResultCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns a copy of the cached resources for key.
func (c *ResultCache) Get(_ context.Context, key string) ([]domain.Resource, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	entry := el.Value.(*cacheEntry)
	if !c.now().Before(entry.expiresAt) {
		c.remove(el)
		return nil, false, nil
	}
	c.order.MoveToFront(el)
	return cloneResources(entry.resources), true, nil
}

// Set stores a copy of resources under key. A non-positive ttl removes the
// entry instead.
func (c *ResultCache) Set(_ context.Context, key string, resources []domain.Resource, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.remove(el)
	}
	if ttl <= 0 {
		return nil
	}

	entry := &cacheEntry{
		key:       key,
		resources: cloneResources(resources),
		expiresAt: c.now().Add(ttl),
	}
	c.items[key] = c.order.PushFront(entry)

	for c.order.Len() > c.capacity {
		c.remove(c.order.Back())
	}
	return nil
}

// Delete removes key from the cache.
func (c *ResultCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.remove(el)
	}
	return nil
}

// Len returns the number of entries, including expired ones not yet dropped.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// remove unlinks el (caller must hold lock).
func (c *ResultCache) remove(el *list.Element) {
	entry := c.order.Remove(el).(*cacheEntry)
	delete(c.items, entry.key)
}

func cloneResources(in []domain.Resource) []domain.Resource {
	if in == nil {
		return nil
	}
	out := make([]domain.Resource, len(in))
	for i, r := range in {
		r.DurationSeconds = clonePtr(r.DurationSeconds)
		r.PublishedAt = clonePtr(r.PublishedAt)
		r.Views = clonePtr(r.Views)
		r.Likes = clonePtr(r.Likes)
		r.Comments = clonePtr(r.Comments)
		out[i] = r
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
