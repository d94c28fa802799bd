package storage

import "sync"

// MemoryStore is an in-memory Store used by tests and the storage-less dev
// mode. It mirrors the DBStore semantics: whole-value overwrite, missing
// keys omitted on read.
type MemoryStore struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Read(keys []string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string)
	for _, key := range keys {
		if v, ok := m.values[key]; ok {
			result[key] = v
		}
	}
	return result, nil
}

func (m *MemoryStore) Write(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, value := range values {
		m.values[key] = value
	}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
