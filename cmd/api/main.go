// Package main is the entry point for the engagement-service API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"engagement-service/internal/app/service"
	"engagement-service/internal/config"
	rediscache "engagement-service/internal/infra/redis"
	"engagement-service/internal/infra/upstream"
	"engagement-service/internal/job"
	"engagement-service/internal/logger"
	"engagement-service/internal/transport/httpserver"
	"engagement-service/internal/validator"
	"engagement-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Logger, cfg.Sentry)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting engagement-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Ping Redis to verify connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Response cache
	cache := rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)

	// Upstream content API client
	api := upstream.New(
		upstream.ClientConfig{
			BaseURL:      cfg.Upstream.BaseURL,
			Timeout:      cfg.Upstream.Timeout,
			ReadAttempts: cfg.Upstream.ReadAttempts,
			CB: upstream.CBConfig{
				MaxRequests:  cfg.Upstream.CB.MaxRequests,
				Interval:     cfg.Upstream.CB.Interval,
				Timeout:      cfg.Upstream.CB.Timeout,
				FailureRatio: cfg.Upstream.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	// Create services
	engagementSvc := service.NewEngagementService(api, cache, log.Logger)
	qaSvc := service.NewQAService(api, cache, engagementSvc, log.Logger)
	feedSvc := service.NewFeedService(api, cache, log.Logger)
	profileSvc := service.NewProfileService(api, cache, log.Logger)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		engagementSvc,
		qaSvc,
		feedSvc,
		profileSvc,
		redisClient,
		v,
		log.Logger,
	)

	// Start feed warmup job with distributed locking
	var warmer *job.FeedWarmer
	if cfg.Warmup.Enabled {
		warmer = job.NewFeedWarmer(
			feedSvc,
			job.WarmerConfig{
				Interval:  cfg.Warmup.Interval,
				Timeout:   cfg.Warmup.Timeout,
				OnStartup: cfg.Warmup.OnStartup,
			},
			log.Logger,
			distLocker,
		)
		warmer.Start(cfg.Warmup.OnStartup)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		if warmer != nil {
			warmer.Stop()
		}

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
