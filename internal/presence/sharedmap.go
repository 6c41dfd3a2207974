package presence

import (
	"sort"
	"sync"
)

// MemoryMap is an in-process SharedMap. Writes win by arrival order, which
// under a single-writer engine loop is exactly last-writer-wins.
type MemoryMap struct {
	mu      sync.Mutex
	entries map[string]any
}

// NewMemoryMap creates an empty map.
func NewMemoryMap() *MemoryMap {
	return &MemoryMap{entries: make(map[string]any)}
}

// Set stores value under key, replacing any previous value.
func (m *MemoryMap) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

// Get returns the value under key and whether it exists.
func (m *MemoryMap) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok
}

// Delete removes key. Removing an absent key is a no-op.
func (m *MemoryMap) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Clear removes every entry.
func (m *MemoryMap) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]any)
}

// Len returns the number of entries.
func (m *MemoryMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Keys returns all keys in sorted order.
func (m *MemoryMap) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
