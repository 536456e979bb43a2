package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/garrettladley/arcgauge/internal/arc"
	"github.com/garrettladley/arcgauge/internal/config"
	xredis "github.com/garrettladley/arcgauge/internal/redis"
	"github.com/garrettladley/arcgauge/internal/server"
	"github.com/garrettladley/arcgauge/internal/storage"
	"github.com/garrettladley/arcgauge/internal/xslog"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve gauges and geometry over HTTP",
		Long:  "Starts the HTTP server. Configuration is read from the environment (PORT, ENV, REDIS_URL, CACHE_*, RATE_*, SERVER_*).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := xslog.NewLoggerFromEnv(os.Stdout)
			slog.SetDefault(logger)

			ctx := cmd.Context()
			if err := serve(ctx, logger); err != nil {
				logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
				return err
			}
			return nil
		},
	}
}

func serve(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cache, limiter, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close cache", xslog.Error(err))
		}
	}()
	if closer, ok := limiter.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.ErrorContext(ctx, "failed to close rate limiter", xslog.Error(err))
			}
		}()
	}

	srv := server.New(cfg, server.Deps{
		Cache:   cache,
		Logger:  logger,
		Limiter: limiter,
		Engine:  arc.Default,
	})

	return server.Run(ctx, cfg, srv, logger)
}

// initStorage picks Redis when REDIS_URL is set and in-process storage
// otherwise. The limiter is nil when rate limiting is disabled.
func initStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.Cache, storage.RateLimiter, error) {
	var limiter storage.RateLimiter

	if !cfg.UseRedis() {
		logger.InfoContext(ctx, "initializing memory backend", xslog.Backend("memory"))
		if cfg.RateLimit.Limit > 0 {
			perSecond := cfg.RateLimit.Limit / cfg.RateLimit.Window.Seconds()
			limiter = storage.NewMemoryLimiter(perSecond, cfg.RateLimit.Burst)
		}
		return storage.NewMemoryCache(cfg.Cache.CleanupInterval, storage.DefaultMaxEntries), limiter, nil
	}

	logger.InfoContext(ctx, "initializing Redis backend", xslog.Backend("redis"))
	client, err := xredis.New(ctx, xredis.Config{
		URL:         cfg.Redis.URL,
		PingTimeout: cfg.Redis.PingTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis client: %w", err)
	}

	redisCfg := storage.RedisConfig{Client: client}
	if cfg.RateLimit.Limit > 0 {
		limiter = storage.NewRedisLimiter(redisCfg, int(cfg.RateLimit.Limit), cfg.RateLimit.Window)
	}
	return storage.NewRedisCache(redisCfg), limiter, nil
}
