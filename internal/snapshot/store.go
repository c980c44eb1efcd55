// Package snapshot holds the most recent UI hierarchy published by the
// platform event feed and hands consistent references to request handlers.
package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/wsyqhh/Accessibility-Service/internal/model"
)

// Snapshot pairs a hierarchy root with the revision and metadata it was
// captured under. Fields are never mutated after publication.
type Snapshot struct {
	Root     *model.Node
	Revision uint64
	Package  *string // active package id; nil before the first event
	Captured time.Time
}

// Store is the single shared mutable resource between the event feed and the
// request handlers. Publication is an atomic pointer swap so a slow reader
// can never stall the feed, and readers always see a complete snapshot.
// Publish has a single writer (the feed); Current may be called from any
// number of goroutines.
type Store struct {
	current atomic.Pointer[Snapshot]
	rev     atomic.Uint64
}

// NewStore returns an empty store: revision 0, no hierarchy yet.
func NewStore() *Store {
	return &Store{}
}

// Publish replaces the current snapshot with root, increments the revision by
// exactly 1, and stamps the capture time. The previous root reference is
// dropped with the swap.
func (s *Store) Publish(root *model.Node, pkg string) {
	snap := &Snapshot{
		Root:     root,
		Revision: s.rev.Add(1),
		Package:  &pkg,
		Captured: time.Now(),
	}
	s.current.Store(snap)
}

// Current returns the snapshot in effect at call time. Before the first
// Publish it returns a well-defined empty snapshot (nil root, nil package,
// revision 0, Captured = now) rather than nil.
func (s *Store) Current() *Snapshot {
	if snap := s.current.Load(); snap != nil {
		return snap
	}
	return &Snapshot{Revision: 0, Captured: time.Now()}
}

// Revision returns the revision of the latest published snapshot, 0 if none.
func (s *Store) Revision() uint64 {
	return s.rev.Load()
}

// Close releases the held hierarchy reference. Later Current calls see the
// empty state again; the revision counter is not reset.
func (s *Store) Close() {
	s.current.Store(nil)
}
