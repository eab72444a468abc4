package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"melv-core/cli"
	"melv-core/config"
	"melv-core/repository"
	"melv-core/service"
)

const redisPingTimeout = 2 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache, closeCache := newCache(ctx, cfg.Cache, logger)
	defer closeCache()

	analyzer, err := service.NewAnalyzer(cfg.Calculator, cache, logger)
	if err != nil {
		logger.Error("failed to build analyzer", "error", err)
		return 1
	}

	if err := cli.NewRootCmd(analyzer).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// newCache uses Redis when MELV_REDIS_ADDR is set and reachable, and falls
// back to a process-local cache otherwise.
func newCache(
	ctx context.Context,
	cfg config.CacheConfig,
	logger *slog.Logger,
) (repository.CacheRepository, func()) {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.TTL)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
		_ = redisCache.Close()
		return repository.NewMemoryCache(), func() {}
	}

	logger.Debug("using redis cache", "addr", cfg.RedisAddr, "ttl", cfg.TTL)
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logger.Warn("failed to close redis client", "error", err)
		}
	}
}
