// Package redis implements the response cache on top of a Redis store.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultProfileTTL is the validity window for profile-shaped resources.
const DefaultProfileTTL = 5 * time.Minute

// envelope is the stored shape of a cache entry. Staleness is computed
// from StoredAt on every read rather than trusting the Redis key TTL,
// which is only set as a backstop against abandoned keys.
type envelope struct {
	Data     json.RawMessage `json:"data"`
	StoredAt time.Time       `json:"stored_at"`
	TTL      time.Duration   `json:"ttl"`
}

func (e *envelope) expired(now time.Time) bool {
	ttl := e.TTL
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	return now.Sub(e.StoredAt) >= ttl
}

// Cache implements domain.Cache. It is an explicit object owned by the
// composition root; tests get isolation by constructing a fresh instance
// against a fresh store.
type Cache struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
	now       func() time.Time
}

// NewCache creates a new Redis-backed response cache. keyPrefix namespaces
// all keys to prevent collisions with other applications sharing the
// instance.
func NewCache(client *redis.Client, logger *zap.Logger, keyPrefix string) *Cache {
	return &Cache{
		client:    client,
		logger:    logger,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}
}

// WithClock overrides the cache's time source. Tests use this to cross the
// TTL boundary without sleeping.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Get retrieves the payload under key into out. Returns false when the key
// is absent, when the entry has aged past its TTL, or when the stored
// bytes fail to deserialize; a corrupt entry is evicted on the way out.
func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	fullKey := c.buildKey(key)

	raw, err := c.client.Get(ctx, fullKey).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("cache get failed",
			zap.String("key", key),
			zap.Error(err),
		)

		return false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.StoredAt.IsZero() {
		// Corrupt entry: treat as a miss and evict it.
		c.logger.Warn("evicting corrupt cache entry",
			zap.String("key", key),
		)
		c.client.Del(ctx, fullKey)

		return false
	}

	if env.expired(c.now()) {
		c.logger.Debug("cache entry expired",
			zap.String("key", key),
			zap.Time("stored_at", env.StoredAt),
		)
		c.client.Del(ctx, fullKey)

		return false
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		c.logger.Warn("evicting undecodable cache payload",
			zap.String("key", key),
			zap.Error(err),
		)
		c.client.Del(ctx, fullKey)

		return false
	}

	c.logger.Debug("cache hit",
		zap.String("key", key),
		zap.Int("bytes", len(env.Data)),
	)

	return true
}

// Put stores payload under key for ttl. Writes are best-effort: any
// marshalling or storage failure is logged and swallowed, since caching is
// an optimization, not a correctness dependency.
func (c *Cache) Put(ctx context.Context, key string, payload any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}

	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("cache put marshal failed",
			zap.String("key", key),
			zap.Error(err),
		)

		return
	}

	raw, err := json.Marshal(envelope{
		Data:     data,
		StoredAt: c.now(),
		TTL:      ttl,
	})
	if err != nil {
		c.logger.Warn("cache put marshal failed",
			zap.String("key", key),
			zap.Error(err),
		)

		return
	}

	// Redis key TTL is a backstop; read-time expiry is authoritative.
	if err := c.client.Set(ctx, c.buildKey(key), raw, 2*ttl).Err(); err != nil {
		c.logger.Warn("cache put failed",
			zap.String("key", key),
			zap.Int("bytes", len(raw)),
			zap.Duration("ttl", ttl),
			zap.Error(err),
		)

		return
	}

	c.logger.Debug("cache put",
		zap.String("key", key),
		zap.Int("bytes", len(raw)),
		zap.Duration("ttl", ttl),
	)
}

// Invalidate removes the entry under key. Idempotent.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.buildKey(key)).Err(); err != nil {
		c.logger.Warn("cache invalidate failed",
			zap.String("key", key),
			zap.Error(err),
		)

		return
	}

	c.logger.Debug("cache invalidated",
		zap.String("key", key),
	)
}

// InvalidatePrefix removes every entry whose caller key starts with
// prefix. Uses SCAN, which is safe for production use (non-blocking).
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	c.deletePattern(ctx, c.keyPrefix+":"+prefix+"*")
}

// InvalidateAll removes every entry under the cache's namespace.
func (c *Cache) InvalidateAll(ctx context.Context) {
	c.deletePattern(ctx, c.keyPrefix+":*")
}

func (c *Cache) deletePattern(ctx context.Context, pattern string) {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()

	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed",
			zap.String("pattern", pattern),
			zap.Error(err),
		)

		return
	}

	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache bulk delete failed",
			zap.Int("key_count", len(keys)),
			zap.Error(err),
		)

		return
	}

	c.logger.Debug("cache keys invalidated",
		zap.String("pattern", pattern),
		zap.Int("key_count", len(keys)),
	)
}

// buildKey creates a fully-qualified key under the cache's namespace.
func (c *Cache) buildKey(key string) string {
	return c.keyPrefix + ":" + key
}
