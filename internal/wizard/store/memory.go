package store

import (
	"context"
	"encoding/json"
	"sync"

	"seventytwo/internal/wizard/models"
)

// InMemory keeps serialized drafts in a map. Storing JSON rather than live
// structs keeps its behavior identical to the redis store, including the
// corrupt-content-means-empty-draft contract.
type InMemory struct {
	mu     sync.Mutex
	drafts map[string][]byte
}

func NewInMemory() *InMemory {
	return &InMemory{drafts: make(map[string][]byte)}
}

func (s *InMemory) Load(_ context.Context, key string) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeDraft(s.drafts[key]), nil
}

func (s *InMemory) SaveStep(_ context.Context, key string, payload models.StepPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := decodeDraft(s.drafts[key])
	draft.Merge(payload)

	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	s.drafts[key] = raw
	return nil
}

func (s *InMemory) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, key)
	return nil
}

// Corrupt sets raw bytes for a key so tests can exercise the parse-failure
// path.
func (s *InMemory) Corrupt(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[key] = raw
}

// decodeDraft turns stored bytes into a draft, swallowing parse failures.
// A corrupted draft must never lock an applicant out of the wizard.
func decodeDraft(raw []byte) *models.Draft {
	draft := &models.Draft{}
	if len(raw) == 0 {
		return draft
	}
	if err := json.Unmarshal(raw, draft); err != nil {
		return &models.Draft{}
	}
	return draft
}
