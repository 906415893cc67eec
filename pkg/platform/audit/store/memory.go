package store

import (
	"sync"

	"seventytwo/pkg/platform/audit"
)

// Memory is an in-memory audit trail. Suitable for single-instance
// deployments and tests; swap for a durable store when retention matters.
type Memory struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(event audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a snapshot of recorded events, oldest first.
func (m *Memory) Events() []audit.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]audit.Event, len(m.events))
	copy(out, m.events)
	return out
}
