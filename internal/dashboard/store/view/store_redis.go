package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	dashview "tenantdash/internal/dashboard/view"
	id "tenantdash/pkg/domain"
	"tenantdash/pkg/platform/sentinel"
)

const redisViewKeyPrefix = "dashboard:view:"

// RedisStore persists views as JSON in Redis. Saves and reads both refresh
// the TTL; reads use GETEX.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed view store.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Save writes the view, overwriting any previous state.
//
// Errors: returns an error if the view is nil, cannot be encoded, or the write fails.
func (s *RedisStore) Save(ctx context.Context, v *dashview.View) error {
	if v == nil {
		return fmt.Errorf("view is required")
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode view: %w", err)
	}
	if err := s.client.Set(ctx, viewKey(v.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save view: %w", err)
	}
	return nil
}

// Find loads a view and extends its expiry.
//
// Errors: returns sentinel.ErrNotFound on a miss or after expiry; wraps Redis
// or JSON decode errors.
func (s *RedisStore) Find(ctx context.Context, viewID id.ViewID) (*dashview.View, error) {
	var cmd *redis.StringCmd
	if s.ttl > 0 {
		cmd = s.client.GetEx(ctx, viewKey(viewID), s.ttl)
	} else {
		cmd = s.client.Get(ctx, viewKey(viewID))
	}
	data, err := cmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("view not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find view: %w", err)
	}

	var v dashview.View
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode view: %w", err)
	}
	return &v, nil
}

func (s *RedisStore) Delete(ctx context.Context, viewID id.ViewID) error {
	if err := s.client.Del(ctx, viewKey(viewID)).Err(); err != nil {
		return fmt.Errorf("delete view: %w", err)
	}
	return nil
}

func viewKey(viewID id.ViewID) string {
	return redisViewKeyPrefix + viewID.String()
}
