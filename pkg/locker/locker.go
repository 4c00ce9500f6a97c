// Package locker coordinates work that must run on at most one service
// instance at a time, such as the periodic feed warmup.
package locker

import (
	"context"
	"time"
)

// DistributedLocker hands out named locks shared by every instance of
// the service. Implementations must be safe for concurrent use.
//
// Two usage models:
//
//   - Mutual exclusion: acquire, do the work, release. The ttl is a
//     crash backstop sized to the operation's timeout.
//   - Cooldown: acquire with ttl equal to the repeat interval and never
//     release. The feed warmer runs this way, so at most one warmup per
//     interval happens across the whole deployment.
type DistributedLocker interface {
	// Acquire takes the lock named key, or reports false when another
	// instance holds it. The lock expires after ttl unless released.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees the lock when held by this instance. Releasing a
	// lock held elsewhere is a no-op.
	Release(ctx context.Context, key string) error
}
