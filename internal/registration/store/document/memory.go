package document

import (
	"context"
	"sort"
	"sync"

	"seventytwo/internal/registration/models"
	id "seventytwo/pkg/domain"
)

// InMemory keeps document records grouped by owning registration.
type InMemory struct {
	mu   sync.RWMutex
	byID map[id.RegistrationID][]models.Document
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[id.RegistrationID][]models.Document)}
}

func (s *InMemory) Insert(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[doc.RegistrationID] = append(s.byID[doc.RegistrationID], *doc)
	return nil
}

// DeleteByRegistration removes every document owned by the registration.
// Deleting an empty set is not an error; the wipe must be idempotent.
func (s *InMemory) DeleteByRegistration(_ context.Context, regID id.RegistrationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, regID)
	return nil
}

// ListByRegistration returns documents newest-upload first.
func (s *InMemory) ListByRegistration(_ context.Context, regID id.RegistrationID) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]models.Document, len(s.byID[regID]))
	copy(docs, s.byID[regID])
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs, nil
}
