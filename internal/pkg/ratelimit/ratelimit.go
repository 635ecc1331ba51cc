package ratelimit

import (
	"context"
	"sync"
	"time"

	"ellevate-booking/internal/pkg/config"

	"golang.org/x/time/rate"
)

// Limiter throttles actions per identity key (email, client IP). The zero
// decision is allow; callers treat limiter failures as open.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return true, 0, nil
}

func NewNoopLimiter() Limiter {
	return noopLimiter{}
}

// KeyedLimiter is an in-process token bucket per key backed by
// golang.org/x/time/rate. Idle entries are evicted after cfg.KeyTTL so the
// map stays bounded without a background goroutine.
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	keyTTL  time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewKeyedLimiter(cfg config.RateLimitConfig) *KeyedLimiter {
	limit := rate.Limit(float64(cfg.Burst) / cfg.Window.Seconds())
	return &KeyedLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   limit,
		burst:   cfg.Burst,
		keyTTL:  cfg.KeyTTL,
	}
}

func (l *KeyedLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.evictStale(now)

	entry, ok := l.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, l.keyTTL, nil
	}
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

func (l *KeyedLimiter) evictStale(now time.Time) {
	if l.keyTTL <= 0 {
		return
	}
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) > l.keyTTL {
			delete(l.entries, key)
		}
	}
}
