package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"servicedesk/internal/infrastructure/ratelimit"
	"servicedesk/internal/shared/logger"
	"servicedesk/internal/shared/utils"
)

// RateLimiter limits requests per client IP and route group name.
type RateLimiter struct {
	limiter ratelimit.Limiter
	limit   int
	window  time.Duration
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.Limiter, limit int, window time.Duration, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		limit:   limit,
		window:  window,
		logger:  logger,
	}
}

// Limit counts requests under name. A limiter backend failure lets the
// request through.
func (rl *RateLimiter) Limit(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := name + ":" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.limit, rl.window)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
