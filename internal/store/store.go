package store

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

// Store is an ordered object arena keyed by entity ID.
//
// All mutations go through Put and Delete; entities are stored as opaque
// values and callers own the type assertions. The zero value is not usable;
// construct with New.
//
// Thread-safety: Store is NOT safe for concurrent use. The engine is
// single-threaded by design; callers needing concurrency must synchronize
// externally.
type Store struct {
	tree *redblacktree.Tree
}

// New creates an empty arena.
func New() *Store {
	return &Store{tree: redblacktree.NewWithStringComparator()}
}

// Put inserts or replaces the entity stored under id.
func (s *Store) Put(id string, obj any) {
	s.tree.Put(id, obj)
}

// Get returns the entity stored under id, or (nil, false) if absent.
func (s *Store) Get(id string) (any, bool) {
	return s.tree.Get(id)
}

// Has reports whether an entity is stored under id.
func (s *Store) Has(id string) bool {
	_, ok := s.tree.Get(id)
	return ok
}

// Delete removes the entity stored under id. Deleting an absent id is a
// no-op.
func (s *Store) Delete(id string) {
	s.tree.Remove(id)
}

// Len returns the number of stored entities.
func (s *Store) Len() int {
	return s.tree.Size()
}

// IDs returns all entity IDs in sorted order.
func (s *Store) IDs() []string {
	keys := s.tree.Keys()
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k.(string)
	}
	return ids
}

// Each calls fn for every entity in ID order. Iteration stops early if fn
// returns false.
func (s *Store) Each(fn func(id string, obj any) bool) {
	it := s.tree.Iterator()
	for it.Next() {
		if !fn(it.Key().(string), it.Value()) {
			return
		}
	}
}
