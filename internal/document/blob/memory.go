package blob

import (
	"context"
	"fmt"
	"sync"

	"seventytwo/pkg/platform/sentinel"
)

// Memory is an in-memory blob store for development and tests.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
	// failKeys lets tests simulate per-file upload failures.
	failKeys map[string]bool
}

func NewMemory() *Memory {
	return &Memory{
		objects:  make(map[string][]byte),
		failKeys: make(map[string]bool),
	}
}

func (m *Memory) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failKeys[key] {
		return "", sentinel.ErrUnavailable
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.objects[key] = cp
	return fmt.Sprintf("memory://registration-documents/%s", key), nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Len reports how many objects are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// Get returns stored bytes for assertions.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, ok
}

// FailKey makes the next Put for key fail, simulating a storage outage for
// one file.
func (m *Memory) FailKey(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failKeys[key] = true
}
