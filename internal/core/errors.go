// ABOUTME: Error taxonomy for the summarization pipeline
// ABOUTME: Sentinel errors distinguish which stage aborted a run
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput means there was no text to summarize. Surfaced before
	// any network call is attempted.
	ErrEmptyInput = errors.New("no text to summarize")

	// ErrEmbedding means the embedding call failed. Fatal for the run:
	// clustering needs the complete vector set.
	ErrEmbedding = errors.New("embedding service error")

	// ErrClustering means cluster selection received degenerate input.
	ErrClustering = errors.New("clustering error")
)

// ChunkFailure records a non-fatal per-chunk summarization failure. The
// failed chunk contributes an empty string to the combined summary; the run
// continues.
type ChunkFailure struct {
	Index int
	Err   error
}

func (f ChunkFailure) Error() string {
	return fmt.Sprintf("chunk %d summarization failed: %v", f.Index, f.Err)
}

func (f ChunkFailure) Unwrap() error {
	return f.Err
}
