// ABOUTME: Pipeline orchestrates chunk, embed, cluster, summarize, combine
// ABOUTME: Each run owns independent state; progress is monotonic per run
package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"docsum/internal/models"
)

// Embedder maps a batch of chunk texts to vectors, same length and order as
// the input. A failure here aborts the whole run: clustering needs the
// complete vector set.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
}

// ChunkSummarizer reduces one chunk's text to a short summary under the
// given instruction prompt.
type ChunkSummarizer interface {
	SummarizeChunk(ctx context.Context, chunkText, prompt string) (string, error)
}

// ProgressFunc receives percentage updates at pipeline checkpoints. It may
// be invoked from worker goroutines. Values are non-decreasing during a run;
// a failed run reports 0 last so callers can distinguish abort from
// completion. The pipeline reports up to 90; the caller reports 100 once the
// summary is delivered.
type ProgressFunc func(percent int)

// Options tunes one pipeline instance. Zero values take the package
// defaults.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
	MaxClusters  int
	MaxWorkers   int
}

// Result is the outcome of a completed run. Failures lists the chunks whose
// summarization failed; their contributions are empty strings. NoContent is
// set when every contribution came back empty, a state distinct from both
// failure and success with content.
type Result struct {
	RunID           string
	Summary         string
	ChunkCount      int
	Representatives []int
	Failures        []ChunkFailure
	NoContent       bool
}

// Pipeline is a reusable summarization pipeline. A single Pipeline may serve
// concurrent GenerateSummary calls; each call owns an independent run
// context and no state is shared across runs.
type Pipeline struct {
	embedder   Embedder
	summarizer ChunkSummarizer
	splitter   *Splitter
	selector   *ClusterSelector
	dispatcher *Dispatcher
	prompt     string
}

// NewPipeline wires the pipeline stages around the given external
// collaborators. prompt is the instruction text appended to every chunk.
func NewPipeline(embedder Embedder, summarizer ChunkSummarizer, prompt string, opts Options) (*Pipeline, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if summarizer == nil {
		return nil, fmt.Errorf("summarizer is required")
	}

	chunkSize := opts.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	overlap := opts.ChunkOverlap
	if overlap == 0 && opts.ChunkSize == 0 {
		overlap = DefaultChunkOverlap
	}

	splitter, err := NewSplitter(chunkSize, overlap)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		embedder:   embedder,
		summarizer: summarizer,
		splitter:   splitter,
		selector:   NewClusterSelector(opts.MaxClusters),
		dispatcher: NewDispatcher(opts.MaxWorkers),
		prompt:     prompt,
	}, nil
}

// run is the ephemeral state for one GenerateSummary invocation.
type run struct {
	id       string
	stage    models.Stage
	progress ProgressFunc
	last     int
}

func newRun(progress ProgressFunc) *run {
	return &run{
		id:       uuid.New().String(),
		stage:    models.StageIdle,
		progress: progress,
		last:     -1,
	}
}

func (r *run) enter(stage models.Stage) {
	r.stage = stage
}

// report forwards a progress percentage, dropping anything that would move
// backwards.
func (r *run) report(percent int) {
	if r.progress == nil {
		return
	}
	if percent <= r.last {
		return
	}
	r.last = percent
	r.progress(percent)
}

// fail marks the run Failed and resets reported progress to 0.
func (r *run) fail() {
	r.stage = models.StageFailed
	if r.progress != nil {
		r.progress(0)
	}
}

// GenerateSummary reduces text to a short summary. It blocks until the run
// reaches Done or Failed. Fatal errors (empty input, embedding failure,
// degenerate clustering) abort the run; individual chunk summarization
// failures degrade the result instead and are listed in Result.Failures.
func (p *Pipeline) GenerateSummary(ctx context.Context, text string, progress ProgressFunc) (*Result, error) {
	r := newRun(progress)
	r.report(0)

	r.enter(models.StageChunking)
	chunks, err := p.splitter.Split(text)
	if err != nil {
		r.fail()
		return nil, err
	}

	r.enter(models.StageEmbedding)
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		r.fail()
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if err := validateVectors(vectors, len(chunks)); err != nil {
		r.fail()
		return nil, err
	}
	r.report(40)

	r.enter(models.StageClusterSelecting)
	assignment, err := p.selector.SelectRepresentatives(vectors)
	if err != nil {
		r.fail()
		return nil, err
	}
	reps := assignment.Representatives
	r.report(50)

	r.enter(models.StageSummarizing)
	summarize := func(ctx context.Context, chunk models.Chunk) (string, error) {
		return p.summarizer.SummarizeChunk(ctx, chunk.Text, p.prompt)
	}
	results, failures := p.dispatcher.Dispatch(ctx, chunks, reps, summarize, func(completed, total int) {
		r.report(50 + 40*completed/total)
	})

	r.enter(models.StageCombining)
	summary := CombineSummaries(reps, results)
	r.report(90)

	r.enter(models.StageDone)
	res := &Result{
		RunID:           r.id,
		Summary:         summary,
		ChunkCount:      len(chunks),
		Representatives: reps,
		Failures:        failures,
		NoContent:       strings.TrimSpace(summary) == "",
	}
	if res.NoContent {
		log.Printf("[Pipeline] run %s completed but produced no content (%d chunk failures)", r.id, len(failures))
	}
	return res, nil
}

// validateVectors checks the embedding batch invariants: one vector per
// chunk, all vectors sharing the same non-zero dimensionality.
func validateVectors(vectors [][]float64, chunkCount int) error {
	if len(vectors) != chunkCount {
		return fmt.Errorf("%w: got %d vectors for %d chunks", ErrEmbedding, len(vectors), chunkCount)
	}
	if len(vectors) == 0 {
		return fmt.Errorf("%w: empty vector batch", ErrEmbedding)
	}
	dim := len(vectors[0])
	if dim == 0 {
		return fmt.Errorf("%w: zero-dimensional vector at index 0", ErrEmbedding)
	}
	for i, v := range vectors[1:] {
		if len(v) != dim {
			return fmt.Errorf("%w: vector %d has dimension %d, want %d", ErrEmbedding, i+1, len(v), dim)
		}
	}
	return nil
}
