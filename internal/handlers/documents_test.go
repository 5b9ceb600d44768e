// documents_test.go — Unit tests for the pure helpers behind the document
// endpoints.
package handlers

import (
	"testing"
)

// TestClassifyPageSpec verifies the empty-input classification that keeps
// "nothing entered" distinguishable from "nothing valid" — both come back
// empty from the parser, so the split must happen on the raw text.
func TestClassifyPageSpec(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{name: "empty string", input: "", wantCode: "empty_pages"},
		{name: "whitespace only", input: "   ", wantCode: "empty_pages"},
		{name: "valid text passes through", input: "1-3", wantCode: ""},
		{name: "garbage still passes to the parser", input: "abc", wantCode: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := classifyPageSpec(tt.input)
			if code != tt.wantCode {
				t.Errorf("classifyPageSpec(%q) code = %q, want %q", tt.input, code, tt.wantCode)
			}
		})
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		original string
		suffix   string
		want     string
	}{
		{"report.pdf", "extracted", "report_extracted"},
		{"report.PDF", "merged", "report_merged"},
		{"no-extension", "split", "no-extension_split"},
		{"", "extracted", "document_extracted"},
		{"dir/nested.pdf", "split", "nested_split"},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			if got := outputName(tt.original, tt.suffix); got != tt.want {
				t.Errorf("outputName(%q, %q) = %q, want %q", tt.original, tt.suffix, got, tt.want)
			}
		})
	}
}
