// zip.go — packaging split output as a ZIP archive.
package pdfops

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// SplitToZip extracts each page group into its own PDF and packages them as
// a ZIP. Groups are typically one page each ("split into single pages") but
// any grouping works — each entry honors its group's internal order.
//
// Entries are named <base>_part_001.pdf, _002, ... in group order.
func SplitToZip(data []byte, groups [][]int, baseName string) ([]byte, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("no page groups to split")
	}

	base := strings.TrimSuffix(filepath.Base(baseName), filepath.Ext(baseName))
	if base == "" {
		base = "document"
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, group := range groups {
		part, err := ExtractPages(data, group)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to extract part %d: %w", i+1, err)
		}

		entry, err := zw.Create(fmt.Sprintf("%s_part_%03d.pdf", base, i+1))
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to create zip entry %d: %w", i+1, err)
		}
		if _, err := entry.Write(part); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write zip entry %d: %w", i+1, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}
