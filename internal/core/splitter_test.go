// ABOUTME: Tests for the recursive text splitter
// ABOUTME: Verifies coverage, ordering, overlap, and empty-input behavior

package core

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewSplitter_Validation(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
		wantErr   bool
	}{
		{"valid", 100, 30, false},
		{"zero overlap", 100, 0, false},
		{"zero chunk size", 0, 0, true},
		{"negative overlap", 100, -1, true},
		{"overlap equals chunk size", 100, 100, true},
		{"overlap exceeds chunk size", 100, 150, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSplitter(tt.chunkSize, tt.overlap)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSplitter(%d, %d) error = %v, wantErr %v", tt.chunkSize, tt.overlap, err, tt.wantErr)
			}
		})
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	s, err := NewSplitter(100, 10)
	if err != nil {
		t.Fatalf("NewSplitter() error = %v", err)
	}

	for _, text := range []string{"", "   ", "\n\t\n"} {
		t.Run("input "+text, func(t *testing.T) {
			_, err := s.Split(text)
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("Split(%q) error = %v, want ErrEmptyInput", text, err)
			}
		})
	}
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	s, err := NewSplitter(100, 10)
	if err != nil {
		t.Fatalf("NewSplitter() error = %v", err)
	}

	text := "Just one short paragraph."
	chunks, err := s.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("chunk text = %q, want %q", chunks[0].Text, text)
	}
	if chunks[0].Index != 0 {
		t.Errorf("chunk index = %d, want 0", chunks[0].Index)
	}
}

func TestSplit_CoversEntireInput(t *testing.T) {
	// With zero overlap the concatenation of all chunks must equal the
	// source exactly: separators are kept attached, nothing is dropped.
	s, err := NewSplitter(40, 0)
	if err != nil {
		t.Fatalf("NewSplitter() error = %v", err)
	}

	text := "First paragraph with several words.\n\nSecond paragraph is here.\nWith a second line.\n\nThird paragraph closes\tthe document."
	chunks, err := s.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("len(chunks) = %d, want at least 2", len(chunks))
	}

	var rebuilt strings.Builder
	for _, c := range chunks {
		rebuilt.WriteString(c.Text)
	}
	if rebuilt.String() != text {
		t.Errorf("concatenated chunks do not reconstruct input:\ngot  %q\nwant %q", rebuilt.String(), text)
	}
}

func TestSplit_IndicesContiguous(t *testing.T) {
	s, err := NewSplitter(30, 5)
	if err != nil {
		t.Fatalf("NewSplitter() error = %v", err)
	}

	text := strings.Repeat("alpha beta gamma delta.\n", 20)
	chunks, err := s.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunks[%d].Index = %d, want %d", i, c.Index, i)
		}
		if c.Length == 0 {
			t.Errorf("chunks[%d] is empty", i)
		}
	}
}

func TestSplit_OverlapPrefixesNextChunk(t *testing.T) {
	s, err := NewSplitter(20, 6)
	if err != nil {
		t.Fatalf("NewSplitter() error = %v", err)
	}

	text := "one two three\nfour five six\nseven eight nine\nten eleven twelve"
	chunks, err := s.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("len(chunks) = %d, want at least 2", len(chunks))
	}

	// Each chunk after the first begins with the tail of the previous
	// segment (the previous chunk text minus its own overlap prefix).
	prevSegment := chunks[0].Text
	for i := 1; i < len(chunks); i++ {
		tail := prevSegment
		if utf8.RuneCountInString(tail) > 6 {
			runes := []rune(tail)
			tail = string(runes[len(runes)-6:])
		}
		if !strings.HasPrefix(chunks[i].Text, tail) {
			t.Errorf("chunks[%d] = %q does not start with overlap %q", i, chunks[i].Text, tail)
		}
		prevSegment = strings.TrimPrefix(chunks[i].Text, tail)
	}
}

func TestSplit_HardSplitWithoutSeparators(t *testing.T) {
	s, err := NewSplitter(10, 0)
	if err != nil {
		t.Fatalf("NewSplitter() error = %v", err)
	}

	// No separators at all: must fall back to character-level windows.
	text := strings.Repeat("x", 35)
	chunks, err := s.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 4 {
		t.Fatalf("len(chunks) = %d, want 4", len(chunks))
	}
	for i, c := range chunks {
		if c.Length > 10 {
			t.Errorf("chunks[%d].Length = %d, want <= 10", i, c.Length)
		}
	}
}

func TestSplit_MultibyteSafe(t *testing.T) {
	s, err := NewSplitter(8, 2)
	if err != nil {
		t.Fatalf("NewSplitter() error = %v", err)
	}

	text := strings.Repeat("héllö ", 10)
	chunks, err := s.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	for i, c := range chunks {
		if !utf8.ValidString(c.Text) {
			t.Errorf("chunks[%d] contains invalid UTF-8", i)
		}
	}
}
