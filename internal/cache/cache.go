// Package cache provides the in-process result cache for computed prayer
// times and Qibla bearings: strict LRU eviction, per-entry TTL and
// at-most-one concurrent computation per key.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/fazil-api/prayer-times-service/internal/observability"
)

// Cache is a key-addressed store with a fixed capacity. Entries move
// through absent -> fresh -> stale -> evicted; a stale entry behaves like
// an absent one on next access. All table access is serialized on one
// mutex; computations run outside the lock, with concurrent callers for
// the same key waiting on the first caller's result.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front is most recently used
	inflight map[string]*inflightCall

	hits      uint64
	misses    uint64
	evictions uint64

	now func() time.Time // replaceable in tests
}

type entry struct {
	key        string
	payload    any
	insertedAt time.Time
	ttl        time.Duration
}

// inflightCall tracks a computation in progress so concurrent callers for
// the same cold key reuse one result instead of recomputing.
type inflightCall struct {
	done    chan struct{}
	payload any
	err     error
}

// New creates a Cache holding at most capacity entries.
func New(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		inflight: make(map[string]*inflightCall),
		now:      time.Now,
	}
}

// GetOrCompute returns the cached payload for key if present and fresh,
// otherwise computes it, stores it with the given TTL and returns it. A
// failed compute stores nothing. If a computation for key is already in
// flight, the caller waits for and reuses that result.
func (c *Cache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func() (any, error)) (any, error) {
	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		ent := el.Value.(*entry)
		if c.now().Sub(ent.insertedAt) <= ent.ttl {
			c.order.MoveToFront(el)
			c.hits++
			payload := ent.payload
			c.mu.Unlock()
			return payload, nil
		}
		// Stale: treated identically to absent.
		c.order.Remove(el)
		delete(c.entries, key)
	}
	c.misses++

	if call, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-call.done:
			return call.payload, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	call := &inflightCall{done: make(chan struct{})}
	c.inflight[key] = call
	c.mu.Unlock()

	payload, err := compute()

	c.mu.Lock()
	call.payload = payload
	call.err = err
	delete(c.inflight, key)
	if err == nil {
		c.insertLocked(key, payload, ttl)
	}
	c.mu.Unlock()
	close(call.done)

	return payload, err
}

// insertLocked adds a fresh entry, evicting from the least-recently-used
// end when at capacity. Caller holds c.mu.
func (c *Cache) insertLocked(key string, payload any, ttl time.Duration) {
	if el, ok := c.entries[key]; ok {
		c.order.Remove(el)
		delete(c.entries, key)
	}
	for len(c.entries) >= c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
		c.evictions++
		observability.CacheEvictionsTotal.Inc()
	}
	el := c.order.PushFront(&entry{
		key:        key,
		payload:    payload,
		insertedAt: c.now(),
		ttl:        ttl,
	})
	c.entries[key] = el
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
	Size      int    `json:"size"`
	Capacity  int    `json:"capacity"`
}

// Stats returns the current counters and occupancy.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.entries),
		Capacity:  c.capacity,
	}
}
