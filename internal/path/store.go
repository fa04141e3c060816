// Package path holds the in-memory learning-item collection for one
// employee's learning-path view session. Items live for the duration of
// the view and are reloaded from the server whenever a completion lands.
package path

import "sync"

// Store supports optimistic status transitions with rollback: the
// caller flips status before the remote call confirms, holds the
// returned previous status as an undo token, and rolls back on failure.
type Store struct {
	mu    sync.Mutex
	items []Item
	index map[int]int // item id -> position in items
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{index: make(map[int]int)}
}

// Load replaces the collection with a fresh server snapshot.
func (s *Store) Load(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]Item, len(items))
	copy(s.items, items)
	s.index = make(map[int]int, len(items))
	for i, it := range s.items {
		s.index[it.ID] = i
	}
}

// Items returns a copy of the collection in load order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with the given id.
func (s *Store) Get(id int) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// Len returns the number of loaded items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// SetStatus transitions one item and returns its previous status as
// the undo token for a later rollback. Concurrent updates to the same
// id are last-writer-wins; updates to different ids are independent.
func (s *Store) SetStatus(id int, status Status) (prev Status, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return 0, false
	}
	prev = s.items[i].Status
	s.items[i].Status = status
	return prev, true
}

// Rollback restores the status captured before an optimistic update.
// An item that has reached DONE is never regressed: completion comes
// only from remote confirmation and outranks any pending rollback.
func (s *Store) Rollback(id int, prev Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return
	}
	if s.items[i].Status == StatusDone {
		return
	}
	s.items[i].Status = prev
}
