package cache

import (
	"container/list"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"
)

const memorySampleSize = 10

// Stats is a snapshot of the cache counters. Counters are monotonic and
// reset only by Clear.
type Stats struct {
	TotalRequests      int64   `json:"total_requests"`
	Hits               int64   `json:"hits"`
	Misses             int64   `json:"misses"`
	HitRate            float64 `json:"hit_rate"`
	AvgRetrievalTimeMs float64 `json:"avg_retrieval_time_ms"`
	ActiveItems        int     `json:"active_items"`
	MemoryEstimate     int64   `json:"memory_estimate_bytes"`
	ExpiredCleaned     int64   `json:"expired_cleaned"`
}

// TopItem describes one entry for the observability surface.
type TopItem struct {
	Key         string    `json:"key"`
	AccessCount int64     `json:"access_count"`
	LastAccess  time.Time `json:"last_access"`
	AgeSeconds  float64   `json:"age_seconds"`
}

type item[V any] struct {
	value       V
	storedAt    time.Time
	accessCount int64
	lastAccess  time.Time
	elem        *list.Element
}

// Dynamic is a bounded LRU+TTL store. Every operation is serialized through
// one mutex per instance; reads hand out copies, never the stored value.
type Dynamic[V any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	clone   func(V) V
	logger  *log.Logger

	items map[string]*item[V]
	order *list.List // front = most recently used

	totalRequests  int64
	hits           int64
	misses         int64
	expiredCleaned int64
	avgRetrievalMs float64

	now func() time.Time
}

func NewDynamic[V any](maxSize int, ttl time.Duration, clone func(V) V, logger *log.Logger) *Dynamic[V] {
	if maxSize <= 0 {
		maxSize = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if clone == nil {
		clone = func(v V) V { return v }
	}
	return &Dynamic[V]{
		maxSize: maxSize,
		ttl:     ttl,
		clone:   clone,
		logger:  logger,
		items:   make(map[string]*item[V]),
		order:   list.New(),
		now:     time.Now,
	}
}

// Get returns a copy of the stored value. Expired entries are evicted on
// read and counted as misses.
func (c *Dynamic[V]) Get(key string) (V, bool) {
	var zero V
	start := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.totalRequests++

	it, ok := c.items[key]
	if !ok {
		c.misses++
		c.observeRetrieval(start)
		return zero, false
	}

	now := c.now()
	if now.Sub(it.storedAt) >= c.ttl {
		c.removeLocked(key, it)
		c.expiredCleaned++
		c.misses++
		c.observeRetrieval(start)
		return zero, false
	}

	it.accessCount++
	it.lastAccess = now
	c.order.MoveToFront(it.elem)
	c.hits++
	c.observeRetrieval(start)
	return c.clone(it.value), true
}

// Set inserts or overwrites a copy of value. Inserting a new key at capacity
// evicts the least-recently-used entry first.
func (c *Dynamic[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if it, ok := c.items[key]; ok {
		it.value = c.clone(value)
		it.storedAt = now
		it.lastAccess = now
		c.order.MoveToFront(it.elem)
		return
	}

	if len(c.items) >= c.maxSize {
		c.evictLRULocked()
	}

	it := &item[V]{
		value:      c.clone(value),
		storedAt:   now,
		lastAccess: now,
	}
	it.elem = c.order.PushFront(key)
	c.items[key] = it
}

// Clear wipes every entry and resets all counters.
func (c *Dynamic[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*item[V])
	c.order.Init()
	c.totalRequests = 0
	c.hits = 0
	c.misses = 0
	c.expiredCleaned = 0
	c.avgRetrievalMs = 0
}

// CleanupExpired removes every entry past its TTL and returns the count.
// Intended for periodic background invocation: lazily-expired keys that are
// never re-read would otherwise leak until eviction.
func (c *Dynamic[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, it := range c.items {
		if now.Sub(it.storedAt) >= c.ttl {
			c.removeLocked(key, it)
			removed++
		}
	}
	c.expiredCleaned += int64(removed)
	return removed
}

// Stats reports counters plus a sampled memory estimate: the average JSON
// size of up to ten entries multiplied by the item count, so a stats call
// never walks the whole store.
func (c *Dynamic[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		TotalRequests:      c.totalRequests,
		Hits:               c.hits,
		Misses:             c.misses,
		AvgRetrievalTimeMs: c.avgRetrievalMs,
		ActiveItems:        len(c.items),
		ExpiredCleaned:     c.expiredCleaned,
	}
	if c.totalRequests > 0 {
		s.HitRate = float64(c.hits) / float64(c.totalRequests)
	}
	s.MemoryEstimate = c.sampleMemoryLocked()
	return s
}

// TopItems returns up to limit entries by access count descending.
func (c *Dynamic[V]) TopItems(limit int) []TopItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limit <= 0 {
		return []TopItem{}
	}

	now := c.now()
	out := make([]TopItem, 0, len(c.items))
	for key, it := range c.items {
		out = append(out, TopItem{
			Key:         key,
			AccessCount: it.accessCount,
			LastAccess:  it.lastAccess,
			AgeSeconds:  now.Sub(it.storedAt).Seconds(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AccessCount != out[j].AccessCount {
			return out[i].AccessCount > out[j].AccessCount
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (c *Dynamic[V]) evictLRULocked() {
	back := c.order.Back()
	if back == nil {
		return
	}
	key, _ := back.Value.(string)
	if it, ok := c.items[key]; ok {
		c.removeLocked(key, it)
		if c.logger != nil {
			c.logger.Printf("[Cache] LRU evicted | key=%s", key)
		}
	}
}

func (c *Dynamic[V]) removeLocked(key string, it *item[V]) {
	delete(c.items, key)
	if it.elem != nil {
		c.order.Remove(it.elem)
	}
}

func (c *Dynamic[V]) observeRetrieval(start time.Time) {
	ms := float64(time.Since(start).Microseconds()) / 1000.0
	n := float64(c.totalRequests)
	c.avgRetrievalMs += (ms - c.avgRetrievalMs) / n
}

func (c *Dynamic[V]) sampleMemoryLocked() int64 {
	if len(c.items) == 0 {
		return 0
	}
	sampled := 0
	var total int64
	for _, it := range c.items {
		b, err := json.Marshal(it.value)
		if err != nil {
			continue
		}
		total += int64(len(b))
		sampled++
		if sampled >= memorySampleSize {
			break
		}
	}
	if sampled == 0 {
		return 0
	}
	return (total / int64(sampled)) * int64(len(c.items))
}
