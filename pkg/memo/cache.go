// Package memo caches per-site evaluations keyed by a content hash of the
// assessment record, so re-running a project summary after every edit only
// recomputes the sites that changed.
package memo

import (
	"container/list"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/mitchellh/hashstructure/v2"
	"golang.org/x/sync/singleflight"

	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/sora"
)

// DefaultMaxEntries bounds the cache when no size is configured.
const DefaultMaxEntries = 1024

// Observer receives cache and evaluation events. Implementations must be
// safe for concurrent use.
type Observer interface {
	CacheHit()
	CacheMiss()
	Evaluated(status sora.Status)
}

// Cache memoizes sora.Evaluate. Every returned SiteResult is a copy, so
// callers may modify it freely.
//
// Safe for concurrent use. Concurrent misses on the same record compute
// once.
type Cache struct {
	mu       sync.Mutex
	entries  map[uint64]*list.Element
	lru      *list.List
	flight   singleflight.Group
	max      int
	observer Observer

	hits      int64
	misses    int64
	evictions int64
	computes  int64
}

type entry struct {
	key    uint64
	result sora.SiteResult
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxEntries sets the LRU bound. Non-positive values keep the default.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.max = n
		}
	}
}

// WithObserver reports hits, misses and computed statuses to o.
func WithObserver(o Observer) Option {
	return func(c *Cache) { c.observer = o }
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[uint64]*list.Element),
		lru:     list.New(),
		max:     DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key hashes every field the engine reads. UpdatedAt is excluded, so touching
// a record without changing it keeps its entry.
func Key(site assessment.SiteAssessment) (uint64, error) {
	h, err := hashstructure.Hash(site, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, fmt.Errorf("hashing site %s: %w", site.ID, err)
	}
	return h, nil
}

// Evaluate returns the memoized sora.Evaluate result for site.
func (c *Cache) Evaluate(site assessment.SiteAssessment) (sora.SiteResult, error) {
	key, err := Key(site)
	if err != nil {
		return sora.SiteResult{}, err
	}

	if res, ok := c.get(key); ok {
		return res.Clone(), nil
	}

	v, _, _ := c.flight.Do(strconv.FormatUint(key, 16), func() (any, error) {
		if res, ok := c.peek(key); ok {
			return res, nil
		}
		res := sora.Evaluate(site)
		atomic.AddInt64(&c.computes, 1)
		if c.observer != nil {
			c.observer.Evaluated(res.Status)
		}
		c.put(key, res)
		return res, nil
	})
	return v.(sora.SiteResult).Clone(), nil
}

// Aggregate is sora.Aggregate over memoized per-site results. It returns
// the same summary sora.Aggregate would.
func (c *Cache) Aggregate(sites []assessment.SiteAssessment) (sora.ProjectSummary, error) {
	results := make([]sora.SiteResult, len(sites))
	for i := range sites {
		res, err := c.Evaluate(sites[i])
		if err != nil {
			return sora.ProjectSummary{}, err
		}
		results[i] = res
	}
	return sora.Summarize(results)
}

func (c *Cache) get(key uint64) (sora.SiteResult, bool) {
	res, ok := c.peek(key)
	if ok {
		atomic.AddInt64(&c.hits, 1)
		if c.observer != nil {
			c.observer.CacheHit()
		}
	} else {
		atomic.AddInt64(&c.misses, 1)
		if c.observer != nil {
			c.observer.CacheMiss()
		}
	}
	return res, ok
}

// peek looks up key and refreshes its LRU position without touching stats.
func (c *Cache) peek(key uint64) (sora.SiteResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return sora.SiteResult{}, false
	}
	c.lru.MoveToFront(elem)
	return elem.Value.(*entry).result, true
}

func (c *Cache) put(key uint64, res sora.SiteResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		return
	}
	for len(c.entries) >= c.max {
		back := c.lru.Back()
		if back == nil {
			break
		}
		c.lru.Remove(back)
		delete(c.entries, back.Value.(*entry).key)
		atomic.AddInt64(&c.evictions, 1)
	}
	c.entries[key] = c.lru.PushFront(&entry{key: key, result: res})
}

// Clear drops every entry. Stats are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[uint64]*list.Element)
	c.lru.Init()
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries    int   `json:"entries"`
	MaxEntries int   `json:"max_entries"`
	Hits       int64 `json:"hits"`
	Misses     int64 `json:"misses"`
	Evictions  int64 `json:"evictions"`
	Computes   int64 `json:"computes"`
}

// HitRate returns hits as a fraction of lookups, or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Entries:    c.Len(),
		MaxEntries: c.max,
		Hits:       atomic.LoadInt64(&c.hits),
		Misses:     atomic.LoadInt64(&c.misses),
		Evictions:  atomic.LoadInt64(&c.evictions),
		Computes:   atomic.LoadInt64(&c.computes),
	}
}
