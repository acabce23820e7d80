package league

import (
	"sync"
	"time"
)

// MockStore is an in-memory Store for tests. It is safe for concurrent use.
type MockStore struct {
	mu    sync.Mutex
	state *State

	// Spies for method calls
	LoadFunc func() (State, error)
	SaveFunc func(state *State) error

	// Call records
	LoadCalls int
	SaveCalls int
}

// NewMockStore creates a mock holding initial, or nothing when initial is nil.
func NewMockStore(initial *State) *MockStore {
	m := &MockStore{}
	if initial != nil {
		s := initial.Clone()
		m.state = &s
	}
	return m
}

// Load returns a copy of the held document or NewState() when empty.
func (m *MockStore) Load() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	if m.state == nil {
		return NewState(), nil
	}
	return m.state.Clone(), nil
}

// Save stamps UpdatedAt and keeps a copy of state.
func (m *MockStore) Save(state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveFunc != nil {
		return m.SaveFunc(state)
	}
	now := time.Now().UTC()
	state.UpdatedAt = &now
	s := state.Clone()
	m.state = &s
	return nil
}

// Stored returns the last saved document and whether anything was saved.
func (m *MockStore) Stored() (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return State{}, false
	}
	return m.state.Clone(), true
}
