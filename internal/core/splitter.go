// ABOUTME: Splitter breaks document text into ordered overlapping chunks
// ABOUTME: Tries separators in priority order, falling back to a hard split
package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"docsum/internal/models"
)

// DefaultSeparators are tried in priority order: paragraph break, line
// break, tab. Character-level splitting is the final fallback.
var DefaultSeparators = []string{"\n\n", "\n", "\t"}

const (
	// DefaultChunkSize is the target chunk size in runes.
	DefaultChunkSize = 10000
	// DefaultChunkOverlap is the approximate overlap between adjacent chunks.
	DefaultChunkOverlap = 3000
)

// Splitter splits text recursively. Separators are kept attached to the
// preceding segment so the produced chunks, minus overlap, cover the entire
// input with no gaps.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// NewSplitter creates a splitter with the given target chunk size and
// overlap, both measured in runes.
func NewSplitter(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("overlap must be non-negative, got %d", overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("overlap %d must be smaller than chunk size %d", overlap, chunkSize)
	}
	return &Splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: DefaultSeparators,
	}, nil
}

// Split produces the ordered chunk sequence for a document. Empty or
// whitespace-only input fails with ErrEmptyInput.
func (s *Splitter) Split(text string) ([]models.Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	segments := s.splitRecursive(text, s.separators)

	chunks := make([]models.Chunk, 0, len(segments))
	for i, seg := range segments {
		chunkText := seg
		if i > 0 && s.overlap > 0 {
			chunkText = tailRunes(segments[i-1], s.overlap) + seg
		}
		chunks = append(chunks, models.NewChunk(i, chunkText))
	}
	return chunks, nil
}

// splitRecursive splits text into segments no longer than chunkSize runes,
// trying each separator in turn and recursing into oversized pieces.
func (s *Splitter) splitRecursive(text string, separators []string) []string {
	if utf8.RuneCountInString(text) <= s.chunkSize {
		return []string{text}
	}

	if len(separators) == 0 {
		return s.hardSplit(text)
	}

	sep := separators[0]
	rest := separators[1:]

	parts := strings.SplitAfter(text, sep)
	if len(parts) == 1 {
		// Separator not present, try the next one.
		return s.splitRecursive(text, rest)
	}

	return s.mergeParts(parts, rest)
}

// mergeParts greedily packs consecutive parts into segments up to chunkSize.
// Parts that are individually oversized recurse with the remaining
// separators.
func (s *Splitter) mergeParts(parts []string, rest []string) []string {
	var segments []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if curLen > 0 {
			segments = append(segments, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, part := range parts {
		if part == "" {
			continue
		}
		partLen := utf8.RuneCountInString(part)

		if partLen > s.chunkSize {
			flush()
			segments = append(segments, s.splitRecursive(part, rest)...)
			continue
		}

		if curLen+partLen > s.chunkSize {
			flush()
		}
		cur.WriteString(part)
		curLen += partLen
	}
	flush()

	return segments
}

// hardSplit cuts text into chunkSize rune windows.
func (s *Splitter) hardSplit(text string) []string {
	runes := []rune(text)
	var segments []string
	for start := 0; start < len(runes); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, string(runes[start:end]))
	}
	return segments
}

// tailRunes returns the last n runes of text.
func tailRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
