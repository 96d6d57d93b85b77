package rag

import (
	"reflect"
	"testing"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		size     int
		overlap  int
		expected []string
	}{
		{
			name:     "empty text",
			text:     "",
			size:     5,
			overlap:  0,
			expected: nil,
		},
		{
			name:     "shorter than one chunk",
			text:     "hello",
			size:     10,
			overlap:  2,
			expected: []string{"hello"},
		},
		{
			name:     "exactly one chunk",
			text:     "abcde",
			size:     5,
			overlap:  0,
			expected: []string{"abcde"},
		},
		{
			name:     "no overlap",
			text:     "abcdef",
			size:     3,
			overlap:  0,
			expected: []string{"abc", "def"},
		},
		{
			name:     "with overlap",
			text:     "abcdefghij",
			size:     5,
			overlap:  2,
			expected: []string{"abcde", "defgh", "ghij"},
		},
		{
			name:     "multibyte runes split on rune boundaries",
			text:     "héllô wörld",
			size:     6,
			overlap:  0,
			expected: []string{"héllô ", "wörld"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChunkText(tt.text, tt.size, tt.overlap)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ChunkText(%q, %d, %d) = %v, expected %v",
					tt.text, tt.size, tt.overlap, got, tt.expected)
			}
		})
	}
}
