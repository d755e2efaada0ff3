package state

import "sync"

// Store is the single owner of the application state. Dispatch serializes
// transitions; Snapshot hands out copies so readers never see a half-applied
// change.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns a store holding initial.
func NewStore(initial State) *Store {
	return &Store{state: initial.Clone()}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Dispatch applies a and returns the resulting state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return s.state.Clone()
}
