// Package cache fronts a directory store with a Redis profile cache.
// Profiles change rarely and are read on every roster build, so a short TTL
// cache takes the hot path off the users table.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"peopledesk/internal/directory/models"
)

const profileKeyPrefix = "dir:profile:"

// Store is the underlying directory store being cached.
type Store interface {
	FindByID(ctx context.Context, id int64) (*models.Profile, error)
	ListBuddies(ctx context.Context) ([]models.Profile, error)
}

// CachedStore is a read-through cache over a directory store. Only single
// profile lookups are cached; the buddy pool listing always hits the store
// because it backs paginated admin views that must be fresh.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
}

func New(inner Store, client *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl}
}

func (c *CachedStore) FindByID(ctx context.Context, id int64) (*models.Profile, error) {
	key := profileKeyPrefix + strconv.FormatInt(id, 10)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var p models.Profile
		if unmarshalErr := json.Unmarshal(payload, &p); unmarshalErr == nil {
			return &p, nil
		}
		// Corrupt entry: fall through to the store and rewrite it.
	} else if !errors.Is(err, redis.Nil) {
		// Redis being down must not break directory reads.
		return c.inner.FindByID(ctx, id)
	}

	p, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload, marshalErr := json.Marshal(p); marshalErr == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			// Best effort only.
			_ = setErr
		}
	}
	return p, nil
}

func (c *CachedStore) ListBuddies(ctx context.Context) ([]models.Profile, error) {
	return c.inner.ListBuddies(ctx)
}

// Invalidate drops a cached profile, for callers that mutate the directory.
func (c *CachedStore) Invalidate(ctx context.Context, id int64) error {
	key := profileKeyPrefix + strconv.FormatInt(id, 10)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("invalidate profile cache: %w", err)
	}
	return nil
}
