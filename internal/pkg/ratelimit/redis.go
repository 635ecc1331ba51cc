package ratelimit

import (
	"context"
	"fmt"
	"time"

	"ellevate-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a token bucket shared across processes, for deployments
// with more than one instance behind a balancer.
type RedisLimiter struct {
	rdb    *redis.Client
	script *redis.Script
	scope  string
	burst  int
	window time.Duration
	keyTTL time.Duration
}

var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local window_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	local interval_ms = window_ms / capacity
	if interval_ms > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local refilled = math.floor(elapsed / interval_ms)
		if refilled > 0 then
			tokens = math.min(capacity, tokens + refilled)
			last_refill = last_refill + (refilled * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, retry_after_ms }
`)

func NewRedisLimiter(cfg config.RateLimitConfig, rdb *redis.Client) *RedisLimiter {
	return &RedisLimiter{
		rdb:    rdb,
		script: tokenBucketScript,
		scope:  cfg.KeyScope,
		burst:  cfg.Burst,
		window: cfg.Window,
		keyTTL: cfg.KeyTTL,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:%s", l.scope, key)

	vals, err := l.script.Run(ctx, l.rdb, []string{redisKey},
		time.Now().UnixMilli(),
		l.burst,
		l.window.Milliseconds(),
		int64(l.keyTTL/time.Second),
	).Int64Slice()
	if err != nil {
		return false, 0, err
	}
	if len(vals) != 2 {
		return false, 0, fmt.Errorf("unexpected limiter script reply: %v", vals)
	}

	allowed := vals[0] == 1
	retryAfter := time.Duration(vals[1]) * time.Millisecond
	return allowed, retryAfter, nil
}
