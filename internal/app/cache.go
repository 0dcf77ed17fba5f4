package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"tasknotes/internal/cache"
	"tasknotes/internal/config"
)

var (
	globalCache       cache.Cache
	globalRedisClient *redis.Client
)

// MustInitCache picks the cache backend: Redis when an address is
// configured, the in-process cache otherwise. An unreachable Redis is
// fatal, same as Postgres.
func MustInitCache() {
	cfg := config.Global().Redis
	if cfg.Addr == "" {
		globalCache = cache.NewMemory()
		globalLogger.Info().Msg("initialized in-memory cache")
		return
	}

	globalRedisClient = redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err := globalRedisClient.Ping(ctx).Err()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping redis")
		panic(err)
	}
	globalLogger.Info().
		Str("addr", cfg.Addr).
		Msg("connected to redis")

	globalCache = cache.NewRedis(globalLogger, globalRedisClient)
}

func CloseCache() {
	if globalRedisClient == nil {
		return
	}

	err := globalRedisClient.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close redis client")
		return
	}
	globalLogger.Info().Msg("disconnected from redis")
}
