// files.go — the ordered file list behind the merge workflow.
package selection

// FileEntry is one input document queued for a merge: the raw bytes plus
// what the UI shows for it. The same file may be queued twice — entries are
// identified by position, not content.
type FileEntry struct {
	Name string
	Size int64
	Data []byte
}

// FileList is the ordered list of merge inputs. List order is exactly
// submission order: the merged output is each file's pages in natural
// order, concatenated in list order.
//
// Like Model, mutations never fail (bad indices are no-ops) and access is
// serialized by the owning session.
type FileList struct {
	entries  []FileEntry
	onChange func(entries []FileEntry)
}

// NewFileList creates an empty merge queue.
func NewFileList() *FileList {
	return &FileList{}
}

// OnChange registers a callback fired after every mutation with the new
// ordered entries.
func (fl *FileList) OnChange(fn func(entries []FileEntry)) {
	fl.onChange = fn
}

func (fl *FileList) notify() {
	if fl.onChange != nil {
		fl.onChange(fl.Files())
	}
}

// Append adds a file at the end of the queue and returns its position.
func (fl *FileList) Append(entry FileEntry) int {
	fl.entries = append(fl.entries, entry)
	fl.notify()
	return len(fl.entries) - 1
}

// RemoveAt drops the entry at index. Out-of-bounds is a no-op.
func (fl *FileList) RemoveAt(index int) {
	if index < 0 || index >= len(fl.entries) {
		return
	}
	fl.entries = append(fl.entries[:index], fl.entries[index+1:]...)
	fl.notify()
}

// Reorder moves the entry at from to index to — same transform as the page
// selection's Reorder.
func (fl *FileList) Reorder(from, to int) {
	fl.entries = reorder(fl.entries, from, to)
	fl.notify()
}

// Files returns the current order as a copy. The Data slices are shared —
// entries are treated as immutable once appended.
func (fl *FileList) Files() []FileEntry {
	out := make([]FileEntry, len(fl.entries))
	copy(out, fl.entries)
	return out
}

// Len returns the number of queued files.
func (fl *FileList) Len() int {
	return len(fl.entries)
}
