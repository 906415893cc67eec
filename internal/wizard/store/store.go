// Package store persists in-progress wizard drafts. The store is injected
// into the navigation service so merge semantics are testable without any
// real backend.
package store

import (
	"context"

	"seventytwo/internal/wizard/models"
)

// DraftStore is the persistence contract for wizard drafts.
//
// Load never fails on corrupt stored content: a draft that cannot be parsed
// is treated as absent and the wizard starts from a blank slate. SaveStep is
// read-merge-write scoped to a single step, so concurrent steps of the same
// session never clobber each other's data.
type DraftStore interface {
	Load(ctx context.Context, key string) (*models.Draft, error)
	SaveStep(ctx context.Context, key string, payload models.StepPayload) error
	Clear(ctx context.Context, key string) error
}
