package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"seventytwo/internal/wizard/models"
)

const draftKeyPrefix = "draft:"

// Redis persists drafts as JSON under draft:{key} with a TTL so abandoned
// drafts age out. Sessions are single-writer per browser, so read-merge-write
// without a lock matches the storage contract.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (s *Redis) Load(ctx context.Context, key string) (*models.Draft, error) {
	raw, err := s.client.Get(ctx, draftKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return &models.Draft{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	return decodeDraft(raw), nil
}

func (s *Redis) SaveStep(ctx context.Context, key string, payload models.StepPayload) error {
	draft, err := s.Load(ctx, key)
	if err != nil {
		return err
	}
	draft.Merge(payload)

	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKeyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *Redis) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, draftKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
