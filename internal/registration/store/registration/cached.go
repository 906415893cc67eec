package registration

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"seventytwo/internal/registration/models"
	id "seventytwo/pkg/domain"
)

// Store is the full registration persistence surface implemented by InMemory,
// Postgres and Cached.
type Store interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByID(ctx context.Context, regID id.RegistrationID) (*models.Registration, error)
	FindByReference(ctx context.Context, ref id.ReferenceNumber) (*models.Registration, error)
	UpdateStatus(ctx context.Context, regID id.RegistrationID, status models.ReviewStatus, notes string, reviewedAt time.Time) error
	List(ctx context.Context) ([]*models.Registration, error)
}

// Cached is a read-through TTL cache over FindByReference. Standalone upload
// links hit the same reference repeatedly (page load, gate re-check, submit),
// so the lookup is worth caching; everything else passes through. Any write
// flushes the cache wholesale: correctness over hit rate at this volume.
type Cached struct {
	Store
	cache *gocache.Cache
}

func NewCached(store Store, ttl time.Duration) *Cached {
	return &Cached{
		Store: store,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *Cached) FindByReference(ctx context.Context, ref id.ReferenceNumber) (*models.Registration, error) {
	key := ref.String()
	if v, ok := c.cache.Get(key); ok {
		cp := *(v.(*models.Registration))
		return &cp, nil
	}
	reg, err := c.Store.FindByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	cp := *reg
	c.cache.SetDefault(key, &cp)
	return reg, nil
}

func (c *Cached) Create(ctx context.Context, reg *models.Registration) error {
	if err := c.Store.Create(ctx, reg); err != nil {
		return err
	}
	c.cache.Flush()
	return nil
}

func (c *Cached) UpdateStatus(ctx context.Context, regID id.RegistrationID, status models.ReviewStatus, notes string, reviewedAt time.Time) error {
	if err := c.Store.UpdateStatus(ctx, regID, status, notes, reviewedAt); err != nil {
		return err
	}
	c.cache.Flush()
	return nil
}
