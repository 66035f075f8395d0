// ABOUTME: Chunk represents a contiguous slice of document text
// ABOUTME: Index is the canonical ordering used throughout the pipeline
package models

import "unicode/utf8"

// Chunk is one contiguous piece of document text processed as a unit.
// Index is 0-based and follows original document order; chunks are never
// mutated after creation.
type Chunk struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// NewChunk creates a chunk with its rune length precomputed.
func NewChunk(index int, text string) Chunk {
	return Chunk{
		Index:  index,
		Text:   text,
		Length: utf8.RuneCountInString(text),
	}
}
