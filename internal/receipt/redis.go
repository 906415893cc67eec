package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const receiptKeyPrefix = "receipt:"

// Redis persists receipts as JSON under receipt:{reference} with a TTL; the
// confirmation view only matters for a short while after submission.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (s *Redis) Put(ctx context.Context, r Receipt) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}
	if err := s.client.Set(ctx, receiptKeyPrefix+r.ReferenceNumber, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save receipt: %w", err)
	}
	return nil
}

func (s *Redis) Get(ctx context.Context, referenceNumber string) (*Receipt, error) {
	raw, err := s.client.Get(ctx, receiptKeyPrefix+referenceNumber).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load receipt: %w", err)
	}
	var r Receipt
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}
	return &r, nil
}
