// pdfops_test.go — Tests for PDF validation. The extract/merge paths need
// real PDF fixtures and are exercised end to end against the API; the
// cheap byte-level checks are covered here.
package pdfops

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{name: "valid header", data: []byte("%PDF-1.7\n..."), want: true},
		{name: "minimal header", data: []byte("%PDF-"), want: true},
		{name: "not a pdf", data: []byte("PK\x03\x04zipfile"), want: false},
		{name: "truncated header", data: []byte("%PD"), want: false},
		{name: "empty", data: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.data); got != tt.want {
				t.Errorf("Validate(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}
