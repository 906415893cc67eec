package receipt

import (
	"context"
	"sync"
)

// InMemory keeps receipts in a map.
type InMemory struct {
	mu       sync.RWMutex
	receipts map[string]Receipt
}

func NewInMemory() *InMemory {
	return &InMemory{receipts: make(map[string]Receipt)}
}

func (s *InMemory) Put(_ context.Context, r Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts[r.ReferenceNumber] = r
	return nil
}

func (s *InMemory) Get(_ context.Context, referenceNumber string) (*Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.receipts[referenceNumber]
	if !ok {
		return nil, nil
	}
	cp := r
	return &cp, nil
}
