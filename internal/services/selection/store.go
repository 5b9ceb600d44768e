// store.go — in-memory registry of live document and merge sessions.
//
// A session is the server-side stand-in for one open browser tab: the
// uploaded bytes, the fixed page count, and the selection state. Sessions
// are mutated by discrete API calls; a per-session mutex plays the role of
// the single event queue, so two racing requests against the same session
// serialize instead of corrupting the order.
package selection

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an untouched session survives before the
// janitor reclaims it. Uploads are held in memory, so idle sessions are
// real cost.
const DefaultSessionTTL = 30 * time.Minute

// DocumentSession owns one uploaded document and its selection model.
type DocumentSession struct {
	ID        string
	Name      string
	PageCount int
	Data      []byte
	Selection *Model

	mu       sync.Mutex
	lastUsed time.Time
}

// Update runs fn with the session locked. All selection mutations and
// reads that must see a consistent order go through here.
func (s *DocumentSession) Update(fn func(m *Model)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	fn(s.Selection)
}

// MergeSession owns one ordered merge queue.
type MergeSession struct {
	ID    string
	Files *FileList

	mu       sync.Mutex
	lastUsed time.Time
}

// Update runs fn with the session locked.
func (s *MergeSession) Update(fn func(fl *FileList)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	fn(s.Files)
}

// Store holds all live sessions, keyed by UUID.
//
// Go Pattern: sync.RWMutex around the maps — lookups vastly outnumber
// creates/deletes. Mutating a session's contents takes the session's own
// lock, not the store's.
type Store struct {
	mu        sync.RWMutex
	documents map[string]*DocumentSession
	merges    map[string]*MergeSession
	ttl       time.Duration
}

// NewStore creates a session store and starts its cleanup goroutine.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	st := &Store{
		documents: make(map[string]*DocumentSession),
		merges:    make(map[string]*MergeSession),
		ttl:       ttl,
	}
	go st.cleanup()
	return st
}

// CreateDocument registers a freshly uploaded document and returns its
// session. The selection starts empty (the reset/initial lifecycle state).
func (st *Store) CreateDocument(name string, pageCount int, data []byte) *DocumentSession {
	s := &DocumentSession{
		ID:        uuid.New().String(),
		Name:      name,
		PageCount: pageCount,
		Data:      data,
		Selection: NewModel(pageCount),
		lastUsed:  time.Now(),
	}
	st.mu.Lock()
	st.documents[s.ID] = s
	st.mu.Unlock()
	return s
}

// Document looks up a document session by ID.
func (st *Store) Document(id string) (*DocumentSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.documents[id]
	return s, ok
}

// RemoveDocument discards a document session. The map entry goes away
// atomically under the store lock; requests that already hold the old
// pointer finish against the orphaned model and their effects are simply
// unobservable afterwards — the discard-stale-work rule from the UI.
func (st *Store) RemoveDocument(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.documents[id]; !ok {
		return false
	}
	delete(st.documents, id)
	return true
}

// CreateMerge registers a new, empty merge session.
func (st *Store) CreateMerge() *MergeSession {
	s := &MergeSession{
		ID:       uuid.New().String(),
		Files:    NewFileList(),
		lastUsed: time.Now(),
	}
	st.mu.Lock()
	st.merges[s.ID] = s
	st.mu.Unlock()
	return s
}

// Merge looks up a merge session by ID.
func (st *Store) Merge(id string) (*MergeSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.merges[id]
	return s, ok
}

// RemoveMerge discards a merge session.
func (st *Store) RemoveMerge(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.merges[id]; !ok {
		return false
	}
	delete(st.merges, id)
	return true
}

// SessionCount reports live sessions (documents + merges), for the health
// endpoint.
func (st *Store) SessionCount() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.documents) + len(st.merges)
}

// cleanup periodically evicts sessions idle past the TTL.
func (st *Store) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		st.mu.Lock()
		for id, s := range st.documents {
			s.mu.Lock()
			idle := now.Sub(s.lastUsed)
			s.mu.Unlock()
			if idle > st.ttl {
				delete(st.documents, id)
			}
		}
		for id, s := range st.merges {
			s.mu.Lock()
			idle := now.Sub(s.lastUsed)
			s.mu.Unlock()
			if idle > st.ttl {
				delete(st.merges, id)
			}
		}
		st.mu.Unlock()
	}
}
