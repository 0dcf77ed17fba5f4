package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Redis keeps cache entries in a shared Redis instance. Backend errors are
// logged and degrade to a store read; they never fail the request.
type Redis struct {
	logger zerolog.Logger
	client *redis.Client
}

var _ Cache = (*Redis)(nil)

func NewRedis(logger zerolog.Logger, client *redis.Client) *Redis {
	return &Redis{
		logger: logger,
		client: client,
	}
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Error().
				Err(err).
				Str("key", key).
				Msg("failed to get cache entry")
		}
		return nil, false
	}
	return value, true
}

func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	err := c.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to set cache entry")
	}
}

func (c *Redis) Delete(ctx context.Context, key string) {
	err := c.client.Del(ctx, key).Err()
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to delete cache entry")
	}
}
