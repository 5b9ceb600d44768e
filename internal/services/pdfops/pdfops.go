// Package pdfops wraps the PDF engines behind the API.
//
// Two libraries split the work: ledongthuc/pdf (pure Go, read-only) answers
// the cheap questions — is this a PDF, how many pages — while pdfcpu does
// the actual page surgery (extract, merge). Everything operates on in-memory
// byte slices because the data arrives as HTTP uploads, never as files on
// disk.
package pdfops

import (
	"bytes"
	"fmt"
	"io"

	ledong "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// conf returns the pdfcpu configuration used for all operations. Relaxed
// validation — plenty of real-world PDFs bend the format rules, and refusing to
// merge them helps nobody.
func conf() *model.Configuration {
	c := model.NewDefaultConfiguration()
	c.ValidationMode = model.ValidationRelaxed
	return c
}

// Validate checks the PDF magic bytes. Cheap first-line defense before any
// parser sees the upload.
func Validate(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}

// PageCount opens the document read-only and returns its page count.
func PageCount(data []byte) (int, error) {
	reader, err := ledong.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	return reader.NumPage(), nil
}

// ExtractPages builds a new PDF containing exactly the given pages, in the
// given order. The page list is the selection order, not necessarily
// ascending — [3 1 2] produces page 3 first. Pages are assumed validated
// against the document's page count by the selection layer.
func ExtractPages(data []byte, pages []int) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to extract")
	}

	ctx, err := api.ReadContext(bytes.NewReader(data), conf())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	extracted, err := pdfcpu.ExtractPages(ctx, pages, false)
	if err != nil {
		return nil, fmt.Errorf("failed to extract pages: %w", err)
	}

	var buf bytes.Buffer
	if err := api.WriteContext(extracted, &buf); err != nil {
		return nil, fmt.Errorf("failed to write extracted PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Merge concatenates the given documents into one PDF, in slice order.
// Output page order is each input's pages in natural order, inputs in the
// order given — the merge queue's contract.
func Merge(files [][]byte) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to merge")
	}
	if len(files) == 1 {
		// Nothing to merge — pass the single document through untouched.
		out := make([]byte, len(files[0]))
		copy(out, files[0])
		return out, nil
	}

	readers := make([]io.ReadSeeker, len(files))
	for i, f := range files {
		readers[i] = bytes.NewReader(f)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, conf()); err != nil {
		return nil, fmt.Errorf("failed to merge PDFs: %w", err)
	}
	return buf.Bytes(), nil
}
