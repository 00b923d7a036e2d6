package ratelimit

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/gocart/internal/pkg/response"
)

// Middleware limits requests per client IP. Used on the auth endpoints,
// which are the ones worth brute-forcing.
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		if !limiter.Allow(key) {
			c.Header("Retry-After", limiter.ResetTime(key).Format(time.RFC3339))
			response.TooManyRequests(c, "Too many requests. Try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
