// ABOUTME: Tests for the caching embedder decorator
// ABOUTME: Verifies hit/miss batching, ordering, and provider failure passthrough

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"docsum/internal/storage/sqlite"
)

// countingEmbedder records which texts reached the provider.
type countingEmbedder struct {
	calls   int
	batches [][]string
	fail    bool
}

func (f *countingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	f.calls++
	f.batches = append(f.batches, texts)
	if f.fail {
		return nil, errors.New("provider down")
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		out[i] = []float64{float64(len(text)), 1}
	}
	return out, nil
}

func newTestCache(t *testing.T) *sqlite.EmbeddingCache {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewEmbeddingCache(db)
}

func TestCachedEmbedder_SecondCallHitsCache(t *testing.T) {
	provider := &countingEmbedder{}
	e := NewCachedEmbedder(provider, newTestCache(t), "test-model")

	texts := []string{"alpha", "beta", "gamma"}
	first, err := e.EmbedTexts(context.Background(), texts)
	if err != nil {
		t.Fatalf("first EmbedTexts() error = %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}

	second, err := e.EmbedTexts(context.Background(), texts)
	if err != nil {
		t.Fatalf("second EmbedTexts() error = %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d after warm cache, want 1", provider.calls)
	}
	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Errorf("vector %d differs between runs", i)
			}
		}
	}
}

func TestCachedEmbedder_PartialMissBatchesOnlyMisses(t *testing.T) {
	provider := &countingEmbedder{}
	e := NewCachedEmbedder(provider, newTestCache(t), "test-model")

	if _, err := e.EmbedTexts(context.Background(), []string{"alpha", "beta"}); err != nil {
		t.Fatalf("warmup error = %v", err)
	}

	got, err := e.EmbedTexts(context.Background(), []string{"alpha", "new one", "beta"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	if provider.calls != 2 {
		t.Fatalf("provider calls = %d, want 2", provider.calls)
	}
	lastBatch := provider.batches[len(provider.batches)-1]
	if len(lastBatch) != 1 || lastBatch[0] != "new one" {
		t.Errorf("second batch = %v, want [new one]", lastBatch)
	}

	// Order preserved: vectors encode text length.
	if got[0][0] != float64(len("alpha")) || got[1][0] != float64(len("new one")) || got[2][0] != float64(len("beta")) {
		t.Errorf("vectors out of order: %v", got)
	}
}

func TestCachedEmbedder_ProviderFailurePropagates(t *testing.T) {
	provider := &countingEmbedder{fail: true}
	e := NewCachedEmbedder(provider, newTestCache(t), "test-model")

	if _, err := e.EmbedTexts(context.Background(), []string{"x"}); err == nil {
		t.Error("expected provider failure to propagate")
	}
}

func TestCachedEmbedder_ModelScopesKeys(t *testing.T) {
	cache := newTestCache(t)
	providerA := &countingEmbedder{}
	providerB := &countingEmbedder{}

	a := NewCachedEmbedder(providerA, cache, "model-a")
	b := NewCachedEmbedder(providerB, cache, "model-b")

	if _, err := a.EmbedTexts(context.Background(), []string{"text"}); err != nil {
		t.Fatalf("model-a embed error = %v", err)
	}
	if _, err := b.EmbedTexts(context.Background(), []string{"text"}); err != nil {
		t.Fatalf("model-b embed error = %v", err)
	}
	if providerB.calls != 1 {
		t.Errorf("model-b provider calls = %d, want 1 (no cross-model hits)", providerB.calls)
	}
}
