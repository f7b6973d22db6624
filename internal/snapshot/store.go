// Package snapshot owns the process-wide record set. The set is immutable
// once built; a refresh builds the replacement fully off to the side and
// swaps one pointer, so readers never observe a partially populated set.
package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/loglens/loglens/internal/model"
)

// Snapshot is one complete, immutable view of the ingested records.
type Snapshot struct {
	Records  []*model.LogRecord
	LoadedAt time.Time
}

// Loader produces a fresh record sequence, typically by re-reading the log
// directory.
type Loader func() []*model.LogRecord

// Store holds the current snapshot behind an atomically swapped pointer.
// Any number of readers may call Current concurrently with a Refresh.
type Store struct {
	current atomic.Pointer[Snapshot]
	loader  Loader
}

// NewStore creates a store with an empty initial snapshot.
func NewStore(loader Loader) *Store {
	s := &Store{loader: loader}
	s.current.Store(&Snapshot{})
	return s
}

// Current returns the active snapshot. Never nil, never mutated.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Refresh rebuilds the record set and swaps it in wholesale, returning the
// new record count.
func (s *Store) Refresh() int {
	records := s.loader()
	s.current.Store(&Snapshot{Records: records, LoadedAt: time.Now()})
	return len(records)
}
