package grant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/leadly/leadly-api/internal/rbac"
)

// Cache is a best-effort Redis cache for grant records. Every session load
// reads the caller's grant, so the hot path stays off Postgres. Any cache
// failure degrades to a store read; it never fails a lookup.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache creates a grant cache. A nil client disables caching.
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func cacheKey(userID uuid.UUID) string {
	return "grants:" + userID.String()
}

// Get returns the cached grant and whether it was present.
func (c *Cache) Get(ctx context.Context, userID uuid.UUID) (rbac.Grant, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("Grant cache read failed")
		}
		return nil, false
	}

	var grant rbac.Grant
	if err := json.Unmarshal(data, &grant); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("Grant cache entry corrupt, dropping")
		c.Invalidate(ctx, userID)
		return nil, false
	}
	return grant, true
}

// Set stores a grant with the configured TTL.
func (c *Cache) Set(ctx context.Context, userID uuid.UUID, grant rbac.Grant) {
	if c == nil || c.rdb == nil {
		return
	}

	data, err := json.Marshal(grant)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(userID), data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("Grant cache write failed")
	}
}

// Invalidate drops the cached grant for a user.
func (c *Cache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, cacheKey(userID)).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("Grant cache invalidation failed")
	}
}
