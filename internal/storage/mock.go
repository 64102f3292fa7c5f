package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MockStorage keeps the encoded values in memory.
type MockStorage struct {
	lock     sync.RWMutex
	Elements map[Key][]byte
}

// NewMockStorage creates a new in-memory storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{Elements: make(map[Key][]byte)}
}

func (m *MockStorage) Store(k Key, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode '%+v': %w", k, err)
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.Elements[k] = b
	return nil
}

func (m *MockStorage) Load(k Key, value interface{}) error {
	m.lock.RLock()
	b, ok := m.Elements[k]
	m.lock.RUnlock()
	if !ok {
		return fmt.Errorf("not found '%+v': %w", k, NotFoundErr)
	}
	if err := json.Unmarshal(b, value); err != nil {
		return fmt.Errorf("could not decode '%+v': %v: %w", k, err, CouldNotLoadErr)
	}
	return nil
}

// Keys returns the stored keys.
func (m *MockStorage) Keys() []Key {
	m.lock.RLock()
	defer m.lock.RUnlock()
	keys := make([]Key, 0, len(m.Elements))
	for k := range m.Elements {
		keys = append(keys, k)
	}
	return keys
}
