package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// IssueLimitWindow is how long a user's report count is kept
const IssueLimitWindow = 24 * time.Hour

// RateCounter increments a windowed counter.
type RateCounter interface {
	// Incr bumps key and returns the new count and the time left in its window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RedisRateCounter counts with INCR, starting the window on the first hit.
type RedisRateCounter struct {
	client *redis.Client
}

func NewRedisRateCounter(client *redis.Client) *RedisRateCounter {
	return &RedisRateCounter{client: client}
}

func (r *RedisRateCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("incrementing count: %w", err)
	}

	// Set TTL only for the first increment
	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("setting TTL: %w", err)
		}
		return count, window, nil
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("reading TTL: %w", err)
	}
	return count, ttl, nil
}

// IssueRateLimiter caps how many issues each user may report per window.
// It must run after AuthMiddleware.
func IssueRateLimiter(counter RateCounter, queuePrefix string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(UserIDKey)
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id missing"})
			c.Abort()
			return
		}

		// Create individual key for each user
		userKey := queuePrefix + ":" + userID

		count, retryAfter, err := counter.Incr(c.Request.Context(), userKey, IssueLimitWindow)
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error counting issues"})
			c.Abort()
			return
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
