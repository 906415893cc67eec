package registration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seventytwo/internal/registration/models"
	id "seventytwo/pkg/domain"
)

// countingStore counts reference lookups hitting the backing store.
type countingStore struct {
	*InMemory
	refLookups int
}

func (c *countingStore) FindByReference(ctx context.Context, ref id.ReferenceNumber) (*models.Registration, error) {
	c.refLookups++
	return c.InMemory.FindByReference(ctx, ref)
}

func newCachedFixture(t *testing.T) (*Cached, *countingStore, *models.Registration) {
	t.Helper()
	backing := &countingStore{InMemory: NewInMemory()}
	cached := NewCached(backing, time.Minute)

	reg, err := models.NewRegistration(
		id.RegistrationID(uuid.New()),
		"BIZ-2025-000042",
		"Thandi Mokoena", "thandi@example.com", "Mokoena Catering",
		time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.NoError(t, cached.Create(context.Background(), reg))
	return cached, backing, reg
}

func TestCachedFindByReferenceIsReadThrough(t *testing.T) {
	cached, backing, reg := newCachedFixture(t)
	ctx := context.Background()

	for range 3 {
		found, err := cached.FindByReference(ctx, reg.ReferenceNumber)
		require.NoError(t, err)
		assert.Equal(t, reg.ID, found.ID)
	}
	assert.Equal(t, 1, backing.refLookups)
}

func TestCachedMissesPassThrough(t *testing.T) {
	cached, backing, _ := newCachedFixture(t)

	_, err := cached.FindByReference(context.Background(), "BIZ-2025-999999")
	require.Error(t, err)
	assert.Equal(t, 1, backing.refLookups)
}

func TestCachedWritesInvalidate(t *testing.T) {
	cached, _, reg := newCachedFixture(t)
	ctx := context.Background()

	found, err := cached.FindByReference(ctx, reg.ReferenceNumber)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, found.Status)

	reviewedAt := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)
	require.NoError(t, cached.UpdateStatus(ctx, reg.ID, models.StatusApproved, "welcome", reviewedAt))

	found, err = cached.FindByReference(ctx, reg.ReferenceNumber)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, found.Status)
	assert.Equal(t, "welcome", found.AdminNotes)
}

func TestCachedHandsOutCopies(t *testing.T) {
	cached, _, reg := newCachedFixture(t)
	ctx := context.Background()

	first, err := cached.FindByReference(ctx, reg.ReferenceNumber)
	require.NoError(t, err)
	first.AdminNotes = "scribbled on by a caller"

	second, err := cached.FindByReference(ctx, reg.ReferenceNumber)
	require.NoError(t, err)
	assert.Empty(t, second.AdminNotes)
}
