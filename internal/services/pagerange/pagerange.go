// Package pagerange converts between the textual page-range notation users
// type ("1,3,5-7") and ordered lists of page numbers.
//
// The two directions are deliberately asymmetric: Parse is forgiving (bad
// tokens are skipped, out-of-range pages are clipped, nothing ever errors),
// while Format assumes clean input (ascending, duplicate-free) because it
// only ever runs on output we produced ourselves. Emptiness is the caller's
// signal — see the handlers for how "nothing typed" and "nothing valid" are
// told apart.
package pagerange

import (
	"strconv"
	"strings"
)

// Parse expands a page-range string into an ordered list of page numbers.
//
// Syntax: comma-separated parts, each either a single page ("3") or a
// closed range ("5-7"). Whitespace around parts is ignored, as are empty
// parts ("1,,2" is fine).
//
// Validation is silent by design — this feeds a live text field, and we
// don't want half-typed input to produce errors on every keystroke:
//   - a range is kept only if both ends parse, start >= 1, and start <= end;
//     its expansion is clipped at totalPages
//   - a single page is kept only if 1 <= p <= totalPages
//   - anything else contributes nothing
//
// Each page number appears at most once in the result, at the position of
// its first occurrence. So "5-7,1,3" yields [5 6 7 1 3] and "1-3,2-4"
// yields [1 2 3 4] — input order wins over numeric order.
func Parse(text string, totalPages int) []int {
	var pages []int
	seen := make(map[int]bool)

	appendPage := func(p int) {
		if !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
	}

	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "-") {
			// Range like "5-7". Split on the FIRST dash only, so "5-7-9"
			// fails on the Atoi of "7-9" rather than silently misparsing.
			startStr, endStr, _ := strings.Cut(part, "-")
			start, err1 := strconv.Atoi(strings.TrimSpace(startStr))
			end, err2 := strconv.Atoi(strings.TrimSpace(endStr))
			if err1 != nil || err2 != nil || start < 1 || start > end {
				continue
			}
			// Clip at the document's page count rather than rejecting the
			// whole range — "8-12" on a 10-page document means pages 8-10.
			if end > totalPages {
				end = totalPages
			}
			for p := start; p <= end; p++ {
				appendPage(p)
			}
			continue
		}

		// Single page like "3".
		p, err := strconv.Atoi(part)
		if err != nil || p < 1 || p > totalPages {
			continue
		}
		appendPage(p)
	}

	return pages
}

// Format collapses an ascending, duplicate-free list of page numbers into
// the shortest range notation: [1 2 3 5 7 8 9] becomes "1-3,5,7-9".
//
// Sorting is the caller's job — the selection model keeps pages in visual
// order, and projects an ascending copy before calling Format.
func Format(pages []int) string {
	if len(pages) == 0 {
		return ""
	}

	var b strings.Builder
	runStart := pages[0]
	runEnd := pages[0]

	flush := func() {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		if runStart == runEnd {
			b.WriteString(strconv.Itoa(runStart))
		} else {
			b.WriteString(strconv.Itoa(runStart))
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(runEnd))
		}
	}

	for _, p := range pages[1:] {
		if p == runEnd+1 {
			runEnd = p
			continue
		}
		flush()
		runStart, runEnd = p, p
	}
	flush()

	return b.String()
}
