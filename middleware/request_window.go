package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"whenfree/utils"
)

// RequestWindow enforces a per-caller ceiling over a fixed interval, counted
// in Redis so the ceiling holds across instances. Callers are keyed by client
// IP and route.
type RequestWindow struct {
	Client *redis.Client
	Max    int
	Window time.Duration
}

// NewRequestWindow builds a fixed-window limiter of max requests per window.
func NewRequestWindow(client *redis.Client, max int, window time.Duration) *RequestWindow {
	return &RequestWindow{Client: client, Max: max, Window: window}
}

// Middleware counts the request against the caller's window and rejects with
// 429 plus a reset hint once the ceiling is hit. A Redis outage fails open:
// the request proceeds and the outage is logged.
func (w *RequestWindow) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		key := fmt.Sprintf("reqwin:%s:%s", c.FullPath(), ClientIP(c))
		ctx := c.Request.Context()

		count, err := w.Client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("request window store unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := w.Client.Expire(ctx, key, w.Window).Err(); err != nil {
				logger.Warn("failed to set request window expiry", zap.String("key", key), zap.Error(err))
			}
		}

		ttl, err := w.Client.TTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = w.Window
		}
		remaining := int64(w.Max) - count
		if remaining < 0 {
			remaining = 0
		}
		resetAt := time.Now().Add(ttl)

		c.Header("X-RateLimit-Limit", strconv.Itoa(w.Max))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if count > int64(w.Max) {
			logger.Warn("Request window exceeded",
				zap.String("key", key), zap.Int64("count", count))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{
				Message: "Too many requests. Please try again later.",
				Details: gin.H{"retryAfterSeconds": int(ttl.Seconds())},
			})
			return
		}
		c.Next()
	}
}
