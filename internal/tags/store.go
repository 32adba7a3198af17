package tags

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot is one successful load of a tag file.
type Snapshot struct {
	Index    *Index
	Warnings []Warning
	LoadedAt time.Time
}

// Store serves the latest snapshot of a tag file. Reload swaps the whole
// snapshot at once, so readers never observe a partially built index.
type Store struct {
	path     string
	current  atomic.Pointer[Snapshot]
	reloadMu sync.Mutex
}

// NewStore loads path and returns a Store serving it.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the tag file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Current returns the active snapshot.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Index returns the active index.
func (s *Store) Index() *Index {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	return snap.Index
}

// Reload reads the tag file again. On failure the previous snapshot stays
// active and the error is returned.
func (s *Store) Reload() (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	index, warnings, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Index:    index,
		Warnings: warnings,
		LoadedAt: time.Now(),
	}
	s.current.Store(snap)
	return snap, nil
}
