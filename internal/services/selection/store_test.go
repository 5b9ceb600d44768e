// store_test.go — Tests for session lifecycle.
package selection

import (
	"testing"
	"time"
)

func TestStoreDocumentLifecycle(t *testing.T) {
	st := NewStore(time.Minute)

	s := st.CreateDocument("report.pdf", 12, []byte("%PDF-1.7"))
	if s.ID == "" {
		t.Fatal("session ID is empty")
	}
	if s.PageCount != 12 {
		t.Errorf("PageCount = %d, want 12", s.PageCount)
	}
	if got := len(s.Selection.Pages()); got != 0 {
		t.Errorf("new session selection has %d pages, want 0", got)
	}

	got, ok := st.Document(s.ID)
	if !ok || got != s {
		t.Fatal("Document() did not return the created session")
	}

	if !st.RemoveDocument(s.ID) {
		t.Fatal("RemoveDocument returned false for live session")
	}
	if _, ok := st.Document(s.ID); ok {
		t.Error("session still resolvable after removal")
	}
	if st.RemoveDocument(s.ID) {
		t.Error("RemoveDocument returned true for a removed session")
	}
}

func TestStoreMergeLifecycle(t *testing.T) {
	st := NewStore(time.Minute)

	s := st.CreateMerge()
	if _, ok := st.Merge(s.ID); !ok {
		t.Fatal("Merge() did not find the created session")
	}

	s.Update(func(fl *FileList) {
		fl.Append(FileEntry{Name: "a.pdf"})
	})
	if s.Files.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Files.Len())
	}

	if st.SessionCount() != 1 {
		t.Errorf("SessionCount() = %d, want 1", st.SessionCount())
	}

	st.RemoveMerge(s.ID)
	if _, ok := st.Merge(s.ID); ok {
		t.Error("merge session still resolvable after removal")
	}
}
