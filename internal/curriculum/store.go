package curriculum

import (
	"sync/atomic"

	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
)

// Store is the single owner of the current snapshot. Replacement is a
// pointer swap: readers observe either the fully-old or the fully-new
// snapshot, never a partially updated one, and in-flight calls keep using
// the snapshot they started with.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns an empty store. Current returns ErrNotLoaded until the
// first Replace.
func NewStore() *Store {
	return &Store{}
}

// Current returns the active snapshot, or domain.ErrNotLoaded if no
// snapshot has been loaded yet.
func (s *Store) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrNotLoaded
	}
	return snap, nil
}

// Loaded reports whether a snapshot is available.
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}

// Replace atomically installs a new snapshot.
func (s *Store) Replace(snap *Snapshot) {
	s.current.Store(snap)
}
