package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit is a fixed-window per-user limiter backed by redis, keyed on the
// authenticated identity. A nil client disables it, so environments without
// redis run unlimited.
func RateLimit(client *redis.Client, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}
		user := c.GetHeader("X-User-ID")
		if user == "" {
			c.Next()
			return
		}

		key := "ratelimit:" + name + ":" + user
		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Fail open when redis is unavailable.
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(c.Request.Context(), key, window)
		}
		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests, slow down",
				"code":    "RATE_LIMITED",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
