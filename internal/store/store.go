// Package store holds the live mount records. It is the fast tier: every
// operation is a guarded map access with no I/O, safe to call from a
// latency-sensitive context.
package store

import (
	"sync"
	"time"
)

// Record is the tracked association between an archive, its mount point,
// and the directory to return to on unmount.
type Record struct {
	// ArchivePath is the absolute path of the archive file.
	ArchivePath string
	// ArchiveName is the original file name, kept for user-facing messages.
	ArchiveName string
	// MountPoint is the directory the archive is exposed under.
	MountPoint string
	// OriginalDir is where the user was when the mount was initiated.
	OriginalDir string
	// CreatedAt is informational; reconciliation does not depend on it.
	CreatedAt time.Time
}

// Store maps mount ids to records behind a mutex.
type Store struct {
	mu      sync.Mutex
	records map[string]Record
}

func New() *Store {
	return &Store{records: make(map[string]Record)}
}

// Get returns the record for id, if tracked.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	return rec, ok
}

// Set stores the record under id, replacing any previous one.
func (s *Store) Set(id string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = rec
}

// Delete removes the record for id. Deleting an untracked id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
}

// Snapshot returns a copy of all records. Callers may iterate and perform
// slow work without holding the store lock; mutations to the copy do not
// affect the store.
func (s *Store) Snapshot() map[string]Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[string]Record, len(s.records))
	for id, rec := range s.records {
		snap[id] = rec
	}
	return snap
}

// Len returns the number of tracked records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
