// model_test.go — Unit tests for the ordered selection model.
package selection

import (
	"reflect"
	"testing"
)

func TestModelToggle(t *testing.T) {
	m := NewModel(10)

	m.Toggle(3)
	m.Toggle(7)
	m.Toggle(1)
	if got, want := m.Pages(), []int{3, 7, 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Pages() = %v, want %v (append order, not numeric order)", got, want)
	}

	// Toggling a selected page removes it from its position.
	m.Toggle(7)
	if got, want := m.Pages(), []int{3, 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Pages() after deselect = %v, want %v", got, want)
	}
}

func TestModelTogglePairIsIdentity(t *testing.T) {
	m := NewModel(10)
	m.Toggle(2)
	m.Toggle(5)
	before := m.Pages()

	m.Toggle(3)
	m.Toggle(3)

	if got := m.Pages(); !reflect.DeepEqual(got, before) {
		t.Errorf("Toggle(3) twice changed state: %v, want %v", got, before)
	}
}

func TestModelToggleOutOfRange(t *testing.T) {
	m := NewModel(5)
	m.Toggle(0)
	m.Toggle(6)
	m.Toggle(-1)
	if got := m.Pages(); len(got) != 0 {
		t.Errorf("out-of-range toggles selected pages: %v", got)
	}
}

func TestModelSelectAllDeselectAll(t *testing.T) {
	m := NewModel(5)
	m.Toggle(4)
	m.Toggle(2)

	m.SelectAll()
	if got, want := m.Pages(), []int{1, 2, 3, 4, 5}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SelectAll() = %v, want %v", got, want)
	}

	m.DeselectAll()
	if got := m.Pages(); len(got) != 0 {
		t.Errorf("DeselectAll() left %v", got)
	}
}

func TestModelSetPages(t *testing.T) {
	m := NewModel(10)
	m.SetPages([]int{5, 6, 7, 1, 3})
	if got, want := m.Pages(), []int{5, 6, 7, 1, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SetPages order not preserved: %v, want %v", got, want)
	}

	// Pages beyond the document are dropped, order of the rest kept.
	m.SetPages([]int{2, 11, 4})
	if got, want := m.Pages(), []int{2, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("SetPages with out-of-range page = %v, want %v", got, want)
	}
}

func TestModelMoveBeforeAfter(t *testing.T) {
	tests := []struct {
		name string
		move func(m *Model)
		want []int
	}{
		{
			name: "move later page before earlier",
			move: func(m *Model) { m.MoveBefore(4, 2) },
			want: []int{1, 4, 2, 3},
		},
		{
			name: "move earlier page before later",
			move: func(m *Model) { m.MoveBefore(1, 4) },
			want: []int{2, 3, 1, 4},
		},
		{
			name: "move after target",
			move: func(m *Model) { m.MoveAfter(1, 3) },
			want: []int{2, 3, 1, 4},
		},
		{
			name: "move after last",
			move: func(m *Model) { m.MoveAfter(2, 4) },
			want: []int{1, 3, 4, 2},
		},
		{
			name: "unselected page is a no-op",
			move: func(m *Model) { m.MoveBefore(9, 2) },
			want: []int{1, 2, 3, 4},
		},
		{
			name: "unselected target is a no-op",
			move: func(m *Model) { m.MoveBefore(2, 9) },
			want: []int{1, 2, 3, 4},
		},
		{
			name: "page onto itself is a no-op",
			move: func(m *Model) { m.MoveBefore(3, 3) },
			want: []int{1, 2, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(10)
			m.SetPages([]int{1, 2, 3, 4})
			tt.move(m)
			if got := m.Pages(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Pages() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestModelReorder covers the drag-and-drop index transform: from before
// the target, from after the target, from == to, and both array ends.
func TestModelReorder(t *testing.T) {
	tests := []struct {
		name string
		from int
		to   int
		want []int
	}{
		{name: "from before to", from: 0, to: 2, want: []int{20, 30, 10, 40}},
		{name: "from after to", from: 3, to: 1, want: []int{10, 40, 20, 30}},
		{name: "from equals to", from: 2, to: 2, want: []int{10, 20, 30, 40}},
		{name: "first to last", from: 0, to: 3, want: []int{20, 30, 40, 10}},
		{name: "last to first", from: 3, to: 0, want: []int{40, 10, 20, 30}},
		{name: "from out of bounds", from: 4, to: 0, want: []int{10, 20, 30, 40}},
		{name: "to out of bounds", from: 0, to: 4, want: []int{10, 20, 30, 40}},
		{name: "negative index", from: -1, to: 2, want: []int{10, 20, 30, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(100)
			m.SetPages([]int{10, 20, 30, 40})
			m.Reorder(tt.from, tt.to)
			if got := m.Pages(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Reorder(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestModelRangeText(t *testing.T) {
	m := NewModel(10)
	m.SetPages([]int{7, 1, 2, 3, 9, 8})

	// The range text is a set description — ascending regardless of the
	// visual order.
	if got, want := m.RangeText(), "1-3,7-9"; got != want {
		t.Errorf("RangeText() = %q, want %q", got, want)
	}

	m.DeselectAll()
	if got := m.RangeText(); got != "" {
		t.Errorf("RangeText() on empty selection = %q, want empty", got)
	}
}

func TestModelOnChange(t *testing.T) {
	m := NewModel(10)

	var calls [][]int
	m.OnChange(func(pages []int) {
		calls = append(calls, pages)
	})

	m.Toggle(2)
	m.Toggle(5)
	m.Reorder(0, 1)
	m.DeselectAll()

	want := [][]int{
		{2},
		{2, 5},
		{5, 2},
		{},
	}
	if len(calls) != len(want) {
		t.Fatalf("got %d change notifications, want %d", len(calls), len(want))
	}
	for i := range want {
		if !reflect.DeepEqual(calls[i], want[i]) && !(len(calls[i]) == 0 && len(want[i]) == 0) {
			t.Errorf("notification %d = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestFileListAppendRemove(t *testing.T) {
	fl := NewFileList()

	fl.Append(FileEntry{Name: "a.pdf", Size: 1})
	fl.Append(FileEntry{Name: "b.pdf", Size: 2})
	// The same file may be queued twice — identity is position.
	fl.Append(FileEntry{Name: "a.pdf", Size: 1})

	if fl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", fl.Len())
	}

	fl.RemoveAt(1)
	names := entryNames(fl)
	if want := []string{"a.pdf", "a.pdf"}; !reflect.DeepEqual(names, want) {
		t.Errorf("after RemoveAt(1): %v, want %v", names, want)
	}

	// Bad indices are no-ops.
	fl.RemoveAt(-1)
	fl.RemoveAt(5)
	if fl.Len() != 2 {
		t.Errorf("out-of-bounds RemoveAt changed length: %d", fl.Len())
	}
}

func TestFileListReorder(t *testing.T) {
	fl := NewFileList()
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"} {
		fl.Append(FileEntry{Name: name})
	}

	fl.Reorder(0, 2)
	if got, want := entryNames(fl), []string{"b.pdf", "c.pdf", "a.pdf", "d.pdf"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Reorder(0, 2) = %v, want %v", got, want)
	}
}

func entryNames(fl *FileList) []string {
	var names []string
	for _, e := range fl.Files() {
		names = append(names, e.Name)
	}
	return names
}
