// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"engagement-service/internal/app/service"
	"engagement-service/pkg/locker"
)

// FeedWarmer periodically pre-loads the first dashboard page into the
// response cache, under a distributed lock so only one instance warms at
// a time. Warming is read-only and best-effort; it never changes the
// cache's read-time expiry semantics.
type FeedWarmer struct {
	feed     *service.FeedService
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	locker   locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WarmerConfig holds feed warmer configuration.
type WarmerConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewFeedWarmer creates a new FeedWarmer.
func NewFeedWarmer(feed *service.FeedService, cfg WarmerConfig, logger *zap.Logger, locker locker.DistributedLocker) *FeedWarmer {
	return &FeedWarmer{
		feed:     feed,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   logger,
		locker:   locker,
	}
}

// Start begins the background warmup loop.
func (w *FeedWarmer) Start(runOnStartup bool) {
	w.ctx, w.cancel = context.WithCancel(context.Background())

	w.logger.Info("starting feed warmer",
		zap.Duration("interval", w.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	w.wg.Add(1)
	go w.run(runOnStartup)
}

// Stop gracefully stops the warmer.
func (w *FeedWarmer) Stop() {
	w.logger.Info("stopping feed warmer")
	w.cancel()
	w.wg.Wait()
	w.logger.Info("feed warmer stopped")
}

func (w *FeedWarmer) run(runOnStartup bool) {
	defer w.wg.Done()

	if runOnStartup {
		w.warm()
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.warm()
		}
	}
}

// warm performs one warmup pass with distributed locking and a timeout.
// Lock TTL = interval (cooldown model): once an instance warms, the rest
// skip until the next tick.
func (w *FeedWarmer) warm() {
	const lockKey = "feed:warmer:lock"

	acquired, err := w.locker.Acquire(w.ctx, lockKey, w.interval)
	if err != nil {
		w.logger.Error("failed to acquire warmup lock", zap.Error(err))

		return
	}
	if !acquired {
		w.logger.Debug("another instance is warming the feed, skipping")

		return
	}

	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	start := time.Now()
	w.feed.Warm(ctx)

	w.logger.Debug("feed warmup pass finished",
		zap.Duration("duration", time.Since(start)),
	)
}
