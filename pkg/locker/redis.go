package locker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLocker implements DistributedLocker with Redsync (Redlock)
// mutexes. The feed warmer is its main consumer: it acquires with ttl
// equal to the warmup interval and never releases, so the lock's expiry
// doubles as the cooldown between passes.
type RedisLocker struct {
	rs     *redsync.Redsync
	logger *zap.Logger

	mu   sync.Mutex
	held map[string]*redsync.Mutex
}

// NewRedisLocker creates a locker backed by the given Redis client.
func NewRedisLocker(client *redis.Client, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		logger: logger,
		held:   make(map[string]*redsync.Mutex),
	}
}

// Acquire takes the lock named key with a single non-blocking attempt.
// Contention is reported as (false, nil), not an error; that is the feed
// warmer's skip path. The lock expires on its own after ttl, so a
// crashed holder cannot wedge the other instances.
func (r *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	mutex := r.rs.NewMutex(key, redsync.WithExpiry(ttl), redsync.WithTries(1))

	if err := mutex.LockContext(ctx); err != nil {
		if isContention(err) {
			r.logger.Debug("lock held elsewhere", zap.String("key", key))
			return false, nil
		}
		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	r.mu.Lock()
	r.held[key] = mutex
	r.mu.Unlock()

	r.logger.Debug("lock acquired",
		zap.String("key", key),
		zap.Duration("ttl", ttl),
	)

	return true, nil
}

// Release frees the lock when this instance holds it. Releasing a lock
// acquired elsewhere, or one that already expired, is a no-op: Redsync
// verifies the holder token, so another instance's lock is never freed
// by mistake.
func (r *RedisLocker) Release(ctx context.Context, key string) error {
	r.mu.Lock()
	mutex, ok := r.held[key]
	delete(r.held, key)
	r.mu.Unlock()

	if !ok {
		return nil
	}

	released, err := mutex.UnlockContext(ctx)
	if err != nil {
		return fmt.Errorf("release lock %s: %w", key, err)
	}
	if released {
		r.logger.Debug("lock released", zap.String("key", key))
	}

	return nil
}

// isContention separates "someone else has it" from real failures such
// as a lost Redis connection or a canceled context. Redsync reports
// contention either as ErrFailed or as a taken error naming the locked
// nodes.
func isContention(err error) bool {
	return errors.Is(err, redsync.ErrFailed) ||
		strings.Contains(err.Error(), "lock already taken")
}
