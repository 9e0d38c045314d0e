package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type payload struct {
	IDs []string `json:"ids"`
}

func clonePayload(p payload) payload {
	out := payload{}
	if p.IDs != nil {
		out.IDs = make([]string, len(p.IDs))
		copy(out.IDs, p.IDs)
	}
	return out
}

func newTestCache(maxSize int, ttl time.Duration) *Dynamic[payload] {
	return NewDynamic(maxSize, ttl, clonePayload, nil)
}

func TestDynamic_GetSet(t *testing.T) {
	c := newTestCache(10, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	c.Set("k1", payload{IDs: []string{"a", "b"}})
	got, ok := c.Get("k1")
	if !ok {
		t.Fatalf("expected hit")
	}
	if len(got.IDs) != 2 || got.IDs[0] != "a" {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestDynamic_TTLExpiry(t *testing.T) {
	c := newTestCache(10, 100*time.Millisecond)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("k1", payload{IDs: []string{"a"}})

	c.now = func() time.Time { return base.Add(50 * time.Millisecond) }
	if _, ok := c.Get("k1"); !ok {
		t.Fatalf("expected hit before ttl")
	}

	c.now = func() time.Time { return base.Add(150 * time.Millisecond) }
	if _, ok := c.Get("k1"); ok {
		t.Fatalf("expected miss after ttl")
	}

	s := c.Stats()
	if s.ExpiredCleaned != 1 {
		t.Fatalf("expected 1 expired cleaned, got %d", s.ExpiredCleaned)
	}
	if s.ActiveItems != 0 {
		t.Fatalf("expected expired entry evicted on read, active=%d", s.ActiveItems)
	}
}

func TestDynamic_LRUEviction(t *testing.T) {
	c := newTestCache(3, time.Minute)

	c.Set("k1", payload{})
	c.Set("k2", payload{})
	c.Set("k3", payload{})

	// Touch k1 so k2 becomes the least recently used.
	if _, ok := c.Get("k1"); !ok {
		t.Fatalf("expected hit for k1")
	}

	c.Set("k4", payload{})

	if _, ok := c.Get("k2"); ok {
		t.Fatalf("expected k2 evicted as LRU")
	}
	for _, key := range []string{"k1", "k3", "k4"} {
		if _, ok := c.Get(key); !ok {
			t.Fatalf("expected %s to survive eviction", key)
		}
	}
}

func TestDynamic_OverwriteDoesNotEvict(t *testing.T) {
	c := newTestCache(2, time.Minute)

	c.Set("k1", payload{IDs: []string{"old"}})
	c.Set("k2", payload{})
	c.Set("k1", payload{IDs: []string{"new"}})

	if _, ok := c.Get("k2"); !ok {
		t.Fatalf("overwrite of existing key must not evict")
	}
	got, _ := c.Get("k1")
	if len(got.IDs) != 1 || got.IDs[0] != "new" {
		t.Fatalf("expected overwritten value, got %+v", got)
	}
}

func TestDynamic_CopyOutIsolation(t *testing.T) {
	c := newTestCache(10, time.Minute)
	c.Set("k1", payload{IDs: []string{"a", "b"}})

	got, _ := c.Get("k1")
	got.IDs[0] = "mutated"

	again, _ := c.Get("k1")
	if again.IDs[0] != "a" {
		t.Fatalf("stored value leaked a live reference")
	}
}

func TestDynamic_Clear(t *testing.T) {
	c := newTestCache(10, time.Minute)
	c.Set("k1", payload{})
	c.Get("k1")
	c.Get("missing")

	c.Clear()

	s := c.Stats()
	if s.ActiveItems != 0 || s.TotalRequests != 0 || s.Hits != 0 || s.Misses != 0 {
		t.Fatalf("expected full reset, got %+v", s)
	}
}

func TestDynamic_CleanupExpired(t *testing.T) {
	c := newTestCache(10, 100*time.Millisecond)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("old1", payload{})
	c.Set("old2", payload{})

	c.now = func() time.Time { return base.Add(60 * time.Millisecond) }
	c.Set("fresh", payload{})

	c.now = func() time.Time { return base.Add(120 * time.Millisecond) }
	removed := c.CleanupExpired()
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Fatalf("fresh entry must survive cleanup")
	}

	// A second pass removes the same or fewer items.
	if again := c.CleanupExpired(); again != 0 {
		t.Fatalf("expected idempotent second pass, removed %d", again)
	}
}

func TestDynamic_Stats(t *testing.T) {
	c := newTestCache(10, time.Minute)
	c.Set("k1", payload{IDs: []string{"a"}})

	c.Get("k1")
	c.Get("k1")
	c.Get("missing")

	s := c.Stats()
	if s.TotalRequests != 3 || s.Hits != 2 || s.Misses != 1 {
		t.Fatalf("unexpected counters: %+v", s)
	}
	if s.HitRate < 0.66 || s.HitRate > 0.67 {
		t.Fatalf("unexpected hit rate: %f", s.HitRate)
	}
	if s.ActiveItems != 1 {
		t.Fatalf("expected 1 active item, got %d", s.ActiveItems)
	}
	if s.MemoryEstimate <= 0 {
		t.Fatalf("expected positive memory estimate")
	}
}

func TestDynamic_StatsEmpty(t *testing.T) {
	c := newTestCache(10, time.Minute)
	s := c.Stats()
	if s.HitRate != 0 {
		t.Fatalf("hit rate must be 0 with no requests, got %f", s.HitRate)
	}
	if s.MemoryEstimate != 0 {
		t.Fatalf("memory estimate must be 0 when empty")
	}
}

func TestDynamic_TopItems(t *testing.T) {
	c := newTestCache(10, time.Minute)
	c.Set("hot", payload{})
	c.Set("warm", payload{})
	c.Set("cold", payload{})

	c.Get("hot")
	c.Get("hot")
	c.Get("hot")
	c.Get("warm")

	top := c.TopItems(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 items, got %d", len(top))
	}
	if top[0].Key != "hot" || top[0].AccessCount != 3 {
		t.Fatalf("unexpected top item: %+v", top[0])
	}
	if top[1].Key != "warm" {
		t.Fatalf("unexpected second item: %+v", top[1])
	}
}

func TestDynamic_ConcurrentAccess(t *testing.T) {
	c := newTestCache(64, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", (n+j)%32)
				c.Set(key, payload{IDs: []string{key}})
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	s := c.Stats()
	if s.ActiveItems > 64 {
		t.Fatalf("cache exceeded max size: %d", s.ActiveItems)
	}
}
