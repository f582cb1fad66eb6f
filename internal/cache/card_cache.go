// Package cache holds the process-scoped read caches in front of the
// store. Nothing here is authoritative; entries are rebuilt from the
// store on miss and reset at process start.
package cache

import (
	"context"
	"time"

	"anicards-backend/internal/models"
	"anicards-backend/internal/store"

	gocache "github.com/patrickmn/go-cache"
)

// CardCache is a read-through cache for card-configuration records.
type CardCache struct {
	store store.Store
	local *gocache.Cache
}

func NewCardCache(st store.Store, ttl time.Duration) *CardCache {
	return &CardCache{
		store: st,
		local: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the raw cards:<id> value, serving from the local cache
// when warm and falling through to the store otherwise.
func (c *CardCache) Get(ctx context.Context, userID int64) (string, error) {
	key := models.CardsKey(userID)
	if cached, found := c.local.Get(key); found {
		return cached.(string), nil
	}
	value, err := c.store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	c.local.Set(key, value, gocache.DefaultExpiration)
	return value, nil
}

// Invalidate drops the cached entry after a write.
func (c *CardCache) Invalidate(userID int64) {
	c.local.Delete(models.CardsKey(userID))
}
