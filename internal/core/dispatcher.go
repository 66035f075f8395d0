// ABOUTME: Dispatcher fans chunk summarization out to a bounded worker pool
// ABOUTME: Results are reassembled by chunk index; per-chunk failures never abort the run
package core

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"docsum/internal/models"
)

// DefaultMaxWorkers bounds concurrent summarization calls in flight.
const DefaultMaxWorkers = 10

// SummarizeFunc reduces one chunk to a short summary.
type SummarizeFunc func(ctx context.Context, chunk models.Chunk) (string, error)

// Dispatcher runs summarization calls concurrently, at most maxWorkers in
// flight. Dispatch blocks until every submitted call has completed or
// failed; it never cancels in-flight calls on an individual failure.
type Dispatcher struct {
	maxWorkers int
}

// NewDispatcher creates a dispatcher with the given concurrency bound.
func NewDispatcher(maxWorkers int) *Dispatcher {
	if maxWorkers < 1 {
		maxWorkers = DefaultMaxWorkers
	}
	return &Dispatcher{maxWorkers: maxWorkers}
}

// Dispatch summarizes the chunks at the given indices and returns summaries
// keyed by chunk index plus the failures, sorted by index. Completion order
// is non-deterministic; callers combine with CombineSummaries to restore
// document order. onProgress, when non-nil, is invoked after each completion
// with (completed, total) and must be safe to call from worker goroutines.
func (d *Dispatcher) Dispatch(ctx context.Context, chunks []models.Chunk, indices []int, summarize SummarizeFunc, onProgress func(completed, total int)) (map[int]string, []ChunkFailure) {
	results := make(map[int]string, len(indices))
	var failures []ChunkFailure

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)
	sem := make(chan struct{}, d.maxWorkers)

	acquire := func() bool {
		if ctx.Err() != nil {
			return false
		}
		select {
		case sem <- struct{}{}:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for _, idx := range indices {
		// Check cancellation before acquiring a worker slot so a cancelled
		// run stops dispatching instead of queueing doomed calls.
		if !acquire() {
			mu.Lock()
			log.Printf("[Dispatcher] chunk %d not dispatched: %v", idx, ctx.Err())
			failures = append(failures, ChunkFailure{Index: idx, Err: ctx.Err()})
			completed++
			if onProgress != nil {
				onProgress(completed, len(indices))
			}
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			summary, err := summarize(ctx, chunks[i])

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[Dispatcher] chunk %d summarization failed: %v", i, err)
				failures = append(failures, ChunkFailure{Index: i, Err: err})
			} else {
				results[i] = summary
			}
			completed++
			if onProgress != nil {
				onProgress(completed, len(indices))
			}
		}(idx)
	}

	wg.Wait()

	sort.Slice(failures, func(a, b int) bool { return failures[a].Index < failures[b].Index })
	return results, failures
}

// CombineSummaries joins per-chunk summaries in ascending chunk index order,
// separated by newlines. Missing or empty contributions are skipped, so a
// failed chunk degrades the summary instead of corrupting it.
func CombineSummaries(indices []int, results map[int]string) string {
	ordered := make([]int, len(indices))
	copy(ordered, indices)
	sort.Ints(ordered)

	var parts []string
	for _, idx := range ordered {
		if s, ok := results[idx]; ok && s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
