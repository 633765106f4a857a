package journal

import "sync"

// MemoryStore is an in-memory journal store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	closed  bool
}

// NewMemoryStore creates a new in-memory journal store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append implements Store.
func (m *MemoryStore) Append(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy spec bytes to avoid retaining the caller's slice
	spec := make([]byte, len(e.Spec))
	copy(spec, e.Spec)
	e.Spec = spec

	m.entries = append(m.entries, e)
	return nil
}

// List implements Store.
func (m *MemoryStore) List(name, entity string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	out := make([]Entry, 0)
	for _, e := range m.entries {
		if e.Name != name || e.Entity != entity {
			continue
		}
		// Return a copy so callers cannot mutate stored bytes
		spec := make([]byte, len(e.Spec))
		copy(spec, e.Spec)
		e.Spec = spec
		out = append(out, e)
	}
	return out, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.entries = nil
	return nil
}

// Len returns the total number of entries across all keys.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
