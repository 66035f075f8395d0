// ABOUTME: CachedEmbedder serves embeddings from SQLite before the provider
// ABOUTME: Misses are batched into one provider call and written back
package storage

import (
	"context"
	"fmt"

	"docsum/internal/core"
	"docsum/internal/storage/sqlite"
)

// CachedEmbedder decorates an Embedder with a persistent cache. Only cache
// misses reach the underlying provider, batched in input order. A provider
// failure is returned as-is; the pipeline treats it as fatal.
type CachedEmbedder struct {
	inner core.Embedder
	cache *sqlite.EmbeddingCache
	model string
}

// NewCachedEmbedder wraps inner with the given cache. model scopes cache
// keys so entries from other embedding models are never served.
func NewCachedEmbedder(inner core.Embedder, cache *sqlite.EmbeddingCache, model string) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, cache: cache, model: model}
}

// EmbedTexts returns one vector per input text in order, mixing cache hits
// with freshly embedded misses.
func (e *CachedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	var missIdx []int
	var missTexts []string

	for i, text := range texts {
		vec, ok, err := e.cache.Get(sqlite.HashText(text), e.model)
		if err != nil {
			return nil, fmt.Errorf("embedding cache: %w", err)
		}
		if ok {
			vectors[i] = vec
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return vectors, nil
	}

	fresh, err := e.inner.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missTexts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(fresh), len(missTexts))
	}

	for j, i := range missIdx {
		vectors[i] = fresh[j]
		if err := e.cache.Put(sqlite.HashText(texts[i]), e.model, fresh[j]); err != nil {
			return nil, fmt.Errorf("embedding cache: %w", err)
		}
	}
	return vectors, nil
}
