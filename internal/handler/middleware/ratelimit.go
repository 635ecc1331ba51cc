package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"ellevate-booking/internal/handler/httperr"
	"ellevate-booking/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit guards credential-guessing endpoints, keyed per client IP. The
// limiter backend decides whether the bucket lives in Redis or in-process.
func RateLimit(limiter ratelimit.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Fail open: an unavailable limiter must not take logins down.
			slog.Warn("rate limiter unavailable", "scope", scope, "error", err.Error())
			c.Next()
			return
		}

		if !allowed {
			if retryAfter > 0 {
				c.Header("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
			}
			httperr.Abort(c, http.StatusTooManyRequests, nil, "Too many attempts, try again later")
			return
		}

		c.Next()
	}
}
