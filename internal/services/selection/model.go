// Package selection holds the ordered-selection state behind the page
// picker: which pages of a document are selected and in what order they
// will appear in the output.
//
// The model is the single source of truth. The API layer projects it into
// JSON and regenerates the range text from it — state is never read back
// from whatever a client rendered. One Model exists per document session,
// created when the document is uploaded and discarded with it; there is no
// package-level instance.
package selection

import (
	"sort"

	"github.com/Shimizu-Technology/pagedeck-api/internal/services/pagerange"
)

// Model is an ordered set of selected page numbers. Each page appears at
// most once; the backing order is the visual/drag order, which is also the
// order pages are emitted in the extracted output.
//
// Mutations never fail: toggling a page outside the document or moving
// relative to an unselected page is simply a no-op. All methods assume the
// caller serializes access (the session store locks per session).
type Model struct {
	totalPages int
	pages      []int
	onChange   func(pages []int)
}

// NewModel creates an empty selection for a document with the given page
// count. The page count is fixed for the model's lifetime.
func NewModel(totalPages int) *Model {
	return &Model{totalPages: totalPages}
}

// OnChange registers a callback fired after every mutation with the new
// ordered page list. The surrounding layer uses it to refresh whatever
// mirrors the selection (range text, highlighting).
func (m *Model) OnChange(fn func(pages []int)) {
	m.onChange = fn
}

// notify fires the change callback with a defensive copy of the order.
func (m *Model) notify() {
	if m.onChange != nil {
		m.onChange(m.Pages())
	}
}

// TotalPages returns the fixed page count of the underlying document.
func (m *Model) TotalPages() int {
	return m.totalPages
}

// Pages returns the current selection order as a copy.
func (m *Model) Pages() []int {
	out := make([]int, len(m.pages))
	copy(out, m.pages)
	return out
}

// indexOf returns the position of page in the selection, or -1.
func (m *Model) indexOf(page int) int {
	for i, p := range m.pages {
		if p == page {
			return i
		}
	}
	return -1
}

// Toggle removes the page if selected, otherwise appends it at the end of
// the current order. Pages outside the document are ignored. Two Toggles
// of an unselected page restore the prior state exactly.
func (m *Model) Toggle(page int) {
	if page < 1 || page > m.totalPages {
		return
	}
	if i := m.indexOf(page); i >= 0 {
		m.pages = append(m.pages[:i], m.pages[i+1:]...)
	} else {
		m.pages = append(m.pages, page)
	}
	m.notify()
}

// SelectAll resets the selection to 1..totalPages in ascending order,
// regardless of prior state.
func (m *Model) SelectAll() {
	m.pages = make([]int, m.totalPages)
	for i := range m.pages {
		m.pages[i] = i + 1
	}
	m.notify()
}

// DeselectAll empties the selection.
func (m *Model) DeselectAll() {
	m.pages = nil
	m.notify()
}

// SetPages replaces the selection order wholesale. This is the typed-text
// path: the parsed page list (already validated, deduped, and ordered by
// the parser) becomes the new order.
func (m *Model) SetPages(pages []int) {
	m.pages = make([]int, 0, len(pages))
	for _, p := range pages {
		if p >= 1 && p <= m.totalPages {
			m.pages = append(m.pages, p)
		}
	}
	m.notify()
}

// MoveBefore reinserts page immediately before target's current position.
// Membership is unchanged — this is a pure reorder. A no-op unless both
// pages are currently selected and distinct.
func (m *Model) MoveBefore(page, target int) {
	m.moveRelative(page, target, false)
}

// MoveAfter reinserts page immediately after target's current position.
// The before/after split mirrors which half of the target thumbnail the
// drop landed on.
func (m *Model) MoveAfter(page, target int) {
	m.moveRelative(page, target, true)
}

func (m *Model) moveRelative(page, target int, after bool) {
	if page == target {
		return
	}
	from := m.indexOf(page)
	if from < 0 || m.indexOf(target) < 0 {
		return
	}
	m.pages = append(m.pages[:from], m.pages[from+1:]...)
	// Target's index is re-resolved after removal, which already accounts
	// for the shift when page sat before target.
	to := m.indexOf(target)
	if after {
		to++
	}
	m.pages = append(m.pages, 0)
	copy(m.pages[to+1:], m.pages[to:])
	m.pages[to] = page
	m.notify()
}

// Reorder moves the element at from so it ends up at index to, as in a
// drag-and-drop list. Out-of-bounds indices and from == to are no-ops.
//
// The index transform: splice the element out FIRST, then insert at to.
// When from < to the removal already shifted later elements down by one,
// which is exactly the downward adjustment a drop-after-position-k
// formulation would otherwise need — so no further arithmetic. Spelled out
// once here instead of re-derived per call site; the tests cover from<to,
// from>to, from==to, and both ends.
func (m *Model) Reorder(from, to int) {
	m.pages = reorder(m.pages, from, to)
	m.notify()
}

// RangeText renders the selection as compact range notation. The notation
// is a set description, so the snapshot is sorted ascending before
// formatting — the formatter's input contract.
func (m *Model) RangeText() string {
	sorted := m.Pages()
	sort.Ints(sorted)
	return pagerange.Format(sorted)
}

// reorder implements the splice-out/splice-in move shared by Model and
// FileList. Generic so the two element types don't duplicate the index
// arithmetic.
func reorder[T any](list []T, from, to int) []T {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) || from == to {
		return list
	}
	moved := list[from]
	list = append(list[:from], list[from+1:]...)
	list = append(list, moved)
	copy(list[to+1:], list[to:len(list)-1])
	list[to] = moved
	return list
}
