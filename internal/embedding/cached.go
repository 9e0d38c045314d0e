package embedding

import (
	"context"
	"log"
	"time"

	"course-match/internal/cache"
)

// VectorCache is the slice of the redis wrapper the decorator needs.
type VectorCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedEmbedder fronts an Embedder with a vector cache keyed by the text's
// content hash. Cache failures are logged and bypassed; only inner embedder
// failures propagate.
type CachedEmbedder struct {
	inner  Embedder
	cache  VectorCache
	ttl    time.Duration
	logger *log.Logger
}

func NewCachedEmbedder(inner Embedder, vc VectorCache, ttl time.Duration, logger *log.Logger) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, cache: vc, ttl: ttl, logger: logger}
}

func (c *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if c.cache == nil {
		return c.inner.Embed(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	missingIdx := make([]int, 0, len(texts))
	missingTexts := make([]string, 0, len(texts))

	for i, text := range texts {
		var v []float32
		ok, err := c.cache.GetJSON(ctx, vectorKey(text), &v)
		if err != nil && c.logger != nil {
			c.logger.Printf("[Embedding] vector cache read failed: %v", err)
		}
		if ok && len(v) > 0 {
			vectors[i] = v
			continue
		}
		missingIdx = append(missingIdx, i)
		missingTexts = append(missingTexts, text)
	}

	if len(missingTexts) == 0 {
		return vectors, nil
	}

	fresh, err := c.inner.Embed(ctx, missingTexts)
	if err != nil {
		return nil, err
	}

	for j, idx := range missingIdx {
		vectors[idx] = fresh[j]
		if err := c.cache.SetJSON(ctx, vectorKey(missingTexts[j]), fresh[j], c.ttl); err != nil && c.logger != nil {
			c.logger.Printf("[Embedding] vector cache write failed: %v", err)
		}
	}
	return vectors, nil
}

func vectorKey(text string) string {
	return "emb:" + cache.TextKey(text)
}

var _ Embedder = (*CachedEmbedder)(nil)
