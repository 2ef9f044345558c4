package db

import (
	"context"
	"fmt"
	"time"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/dgraph-io/ristretto/v2"
)

// UserLookup loads a user by id. It returns an error when the user is gone.
type UserLookup func(ctx context.Context, id int64) (*models.User, error)

// UserCache remembers users the auth middleware has already resolved, so a
// valid token costs one database hit per TTL instead of one per request.
type UserCache struct {
	cache  *ristretto.Cache[int64, *models.User]
	ttl    time.Duration
	lookup UserLookup
}

func NewUserCache(ttl time.Duration, lookup UserLookup) (*UserCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[int64, *models.User]{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return &UserCache{cache: cache, ttl: ttl, lookup: lookup}, nil
}

func (c *UserCache) Get(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := c.cache.Get(id); ok {
		return u, nil
	}
	u, err := c.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cache.SetWithTTL(id, u, 1, c.ttl)
	return u, nil
}

// Evict drops a user, e.g. after deletion or a profile change.
func (c *UserCache) Evict(id int64) {
	c.cache.Del(id)
}

// Wait blocks until buffered writes are applied.
func (c *UserCache) Wait() {
	c.cache.Wait()
}

func (c *UserCache) Close() {
	c.cache.Close()
}
