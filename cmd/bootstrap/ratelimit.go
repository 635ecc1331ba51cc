package bootstrap

import (
	"context"

	"ellevate-booking/internal/pkg/config"
	"ellevate-booking/internal/pkg/ratelimit"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RateLimitModule = fx.Module("ratelimit",
	fx.Provide(
		NewLoginLimiter,
	),
)

// NewLoginLimiter picks the limiter backend from config: Redis-backed when a
// Redis instance is configured (shared across replicas), otherwise an
// in-process bucket, or a no-op when limiting is disabled.
func NewLoginLimiter(lc fx.Lifecycle, cfg config.Config) ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return ratelimit.NewNoopLimiter()
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
			OnStop: func(_ context.Context) error {
				return rdb.Close()
			},
		})
		return ratelimit.NewRedisLimiter(cfg.RateLimit, rdb)
	}

	return ratelimit.NewKeyedLimiter(cfg.RateLimit)
}
