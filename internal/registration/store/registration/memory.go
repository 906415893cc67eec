package registration

import (
	"context"
	"strings"
	"sync"
	"time"

	"seventytwo/internal/registration/models"
	id "seventytwo/pkg/domain"
	"seventytwo/pkg/platform/sentinel"
)

// InMemory keeps registrations in a map. It backs development mode and unit
// tests; semantics mirror the postgres store exactly.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[id.RegistrationID]*models.Registration
	byRef  map[id.ReferenceNumber]id.RegistrationID
	sorted []id.RegistrationID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:  make(map[id.RegistrationID]*models.Registration),
		byRef: make(map[id.ReferenceNumber]id.RegistrationID),
	}
}

func (s *InMemory) Create(_ context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[reg.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := s.byRef[normalizeRef(reg.ReferenceNumber)]; exists {
		return sentinel.ErrConflict
	}
	cp := *reg
	s.byID[reg.ID] = &cp
	s.byRef[normalizeRef(reg.ReferenceNumber)] = reg.ID
	s.sorted = append(s.sorted, reg.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, regID id.RegistrationID) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.byID[regID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *reg
	return &cp, nil
}

func (s *InMemory) FindByReference(_ context.Context, ref id.ReferenceNumber) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	regID, ok := s.byRef[normalizeRef(ref)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.byID[regID]
	return &cp, nil
}

func (s *InMemory) UpdateStatus(_ context.Context, regID id.RegistrationID, status models.ReviewStatus, notes string, reviewedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.byID[regID]
	if !ok {
		return sentinel.ErrNotFound
	}
	reg.Status = status
	reg.AdminNotes = notes
	reg.ReviewedAt = &reviewedAt
	return nil
}

// List returns all registrations, newest submission first.
func (s *InMemory) List(_ context.Context) ([]*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Registration, 0, len(s.sorted))
	for _, regID := range s.sorted {
		cp := *s.byID[regID]
		out = append(out, &cp)
	}
	// Insertion order is submission order; reverse for newest-first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func normalizeRef(ref id.ReferenceNumber) id.ReferenceNumber {
	return id.ReferenceNumber(strings.ToUpper(strings.TrimSpace(ref.String())))
}
