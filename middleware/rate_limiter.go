package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// rateLimitClient is read per request: Redis may be connected after routes are built.
var rateLimitClient = func() *redis.Client {
	return config.RedisClient
}

// RateLimiter allows maxRequests per client IP and route within a fixed window. Without Redis, or
// when Redis fails, requests pass through unlimited.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := rateLimitClient()
		if client == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()

		// The window starts with the first hit; NX keeps later hits from extending it.
		var count *redis.IntCmd
		var ttl *redis.DurationCmd
		_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			count = pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, window)
			ttl = pipe.PTTL(ctx, key)
			return nil
		})
		if err != nil {
			log.Printf("[ratelimit] redis unavailable, allowing request: %v", err)
			c.Next()
			return
		}

		remaining := ttl.Val()
		if remaining <= 0 {
			remaining = window
		}
		rate := quota(maxRequests, int(count.Val()), time.Now().Add(remaining))

		c.Set(models.RateLimitContextKey, rate)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rate.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(rate.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(rate.ResetAt.Unix(), 10))

		if int(count.Val()) > maxRequests {
			log.Printf("[ratelimit] %s exceeded %d requests on %s", c.ClientIP(), maxRequests, c.FullPath())
			c.Header("Retry-After", strconv.Itoa(rate.ResetInSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse(c, "Too many requests. Please try again later."))
			return
		}

		c.Next()
	}
}

func quota(limit, used int, resetAt time.Time) *models.RateLimiter {
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	resetIn := int(time.Until(resetAt).Round(time.Second).Seconds())
	if resetIn < 0 {
		resetIn = 0
	}
	return &models.RateLimiter{
		Limit:          limit,
		Remaining:      remaining,
		ResetAt:        resetAt,
		ResetInSeconds: resetIn,
	}
}
