// ABOUTME: Tests for the Chunk model
// ABOUTME: Verifies rune-based length computation

package models

import "testing"

func TestNewChunk(t *testing.T) {
	tests := []struct {
		name       string
		index      int
		text       string
		wantLength int
	}{
		{"empty", 0, "", 0},
		{"ascii", 2, "hello world", 11},
		{"multibyte", 5, "héllo wörld", 11},
		{"newlines counted", 1, "a\n\nb", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunk(tt.index, tt.text)
			if c.Index != tt.index {
				t.Errorf("Index = %d, want %d", c.Index, tt.index)
			}
			if c.Text != tt.text {
				t.Errorf("Text = %q, want %q", c.Text, tt.text)
			}
			if c.Length != tt.wantLength {
				t.Errorf("Length = %d, want %d", c.Length, tt.wantLength)
			}
		})
	}
}
