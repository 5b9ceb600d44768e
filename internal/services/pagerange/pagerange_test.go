// pagerange_test.go — Unit tests for page-range parsing and formatting.
package pagerange

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		totalPages int
		want       []int
	}{
		{
			name:       "singles and a range",
			input:      "1,3,5-7",
			totalPages: 10,
			want:       []int{1, 3, 5, 6, 7},
		},
		{
			name:       "first-occurrence order, not numeric order",
			input:      "5-7,1,3",
			totalPages: 10,
			want:       []int{5, 6, 7, 1, 3},
		},
		{
			name:       "duplicate keeps first occurrence",
			input:      "1,1,2",
			totalPages: 10,
			want:       []int{1, 2},
		},
		{
			name:       "overlapping ranges dedup at first occurrence",
			input:      "1-3,2-4",
			totalPages: 10,
			want:       []int{1, 2, 3, 4},
		},
		{
			name:       "inverted range dropped silently",
			input:      "3-1",
			totalPages: 10,
			want:       nil,
		},
		{
			name:       "range clipped to page count",
			input:      "8-12",
			totalPages: 10,
			want:       []int{8, 9, 10},
		},
		{
			name:       "single page beyond page count dropped",
			input:      "11",
			totalPages: 10,
			want:       nil,
		},
		{
			name:       "zero and negative pages dropped",
			input:      "0,-1,2",
			totalPages: 10,
			want:       []int{2},
		},
		{
			name:       "whitespace around parts",
			input:      " 1 , 3 - 5 ",
			totalPages: 10,
			want:       []int{1, 3, 4, 5},
		},
		{
			name:       "empty parts ignored",
			input:      "1,,2,",
			totalPages: 10,
			want:       []int{1, 2},
		},
		{
			name:       "bad token does not poison the rest",
			input:      "1,abc,3",
			totalPages: 10,
			want:       []int{1, 3},
		},
		{
			name:       "malformed range dropped",
			input:      "5-7-9,2",
			totalPages: 10,
			want:       []int{2},
		},
		{
			name:       "empty string",
			input:      "",
			totalPages: 10,
			want:       nil,
		},
		{
			name:       "no valid pages at all",
			input:      "abc",
			totalPages: 10,
			want:       nil,
		},
		{
			name:       "range starting past page count",
			input:      "15-20",
			totalPages: 10,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input, tt.totalPages)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q, %d) = %v, want %v", tt.input, tt.totalPages, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		pages []int
		want  string
	}{
		{
			name:  "mixes runs and singletons",
			pages: []int{1, 2, 3, 5, 7, 8, 9},
			want:  "1-3,5,7-9",
		},
		{
			name:  "empty",
			pages: nil,
			want:  "",
		},
		{
			name:  "single page",
			pages: []int{4},
			want:  "4",
		},
		{
			name:  "two-page run collapses",
			pages: []int{4, 5},
			want:  "4-5",
		},
		{
			name:  "no consecutive pages",
			pages: []int{2, 4, 6},
			want:  "2,4,6",
		},
		{
			name:  "one long run",
			pages: []int{1, 2, 3, 4, 5},
			want:  "1-5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.pages)
			if got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.pages, got, tt.want)
			}
		})
	}
}

// TestRoundTrip verifies that formatting and re-parsing an ascending,
// duplicate-free selection reproduces it exactly.
func TestRoundTrip(t *testing.T) {
	sequences := [][]int{
		{1},
		{1, 2, 3},
		{2, 4, 6, 8},
		{1, 2, 3, 5, 7, 8, 9},
		{3, 4, 5, 10, 11, 20},
	}

	for _, seq := range sequences {
		text := Format(seq)
		max := seq[len(seq)-1]
		got := Parse(text, max)
		if !reflect.DeepEqual(got, seq) {
			t.Errorf("Parse(Format(%v)) = %v via %q, want the original", seq, got, text)
		}
	}
}
