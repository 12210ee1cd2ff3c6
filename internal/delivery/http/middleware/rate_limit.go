package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"alumni-network-backend/config"
	"alumni-network-backend/internal/delivery/http/response"
	"alumni-network-backend/pkg/redis"
	"alumni-network-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

type RateLimitConfig struct {
	// Requests allowed per Window; zero or less disables the limiter.
	Limit     int
	Window    time.Duration
	KeyFunc   func(*gin.Context) string
	KeyPrefix string
	// FailClosed rejects requests with 503 when Redis errors instead of
	// falling back to the in-process counter.
	FailClosed bool
}

// windowCounter is the in-process fallback used without Redis.
type windowCounter struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

var (
	localCounters sync.Map
	sweepOnce     sync.Once
)

// KEYS[1] counter key, ARGV[1] window in seconds. Returns {count, ttl}.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

func sweepLocalCounters() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			localCounters.Range(func(key, value interface{}) bool {
				wc := value.(*windowCounter)
				wc.mu.Lock()
				if now.After(wc.resetAt) {
					localCounters.Delete(key)
				}
				wc.mu.Unlock()
				return true
			})
		}
	}()
}

func clientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

func window(cfg *config.Config) time.Duration {
	if cfg.RateLimitWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(cfg.RateLimitWindowSeconds) * time.Second
}

// GlobalRateLimitConfig limits every route per client IP.
func GlobalRateLimitConfig(cfg *config.Config) RateLimitConfig {
	return RateLimitConfig{
		Limit:     cfg.RateLimitGlobalThreshold,
		Window:    window(cfg),
		KeyFunc:   clientIPKey,
		KeyPrefix: "rl:ip:",
	}
}

// AuthRateLimitConfig is the stricter limit for login and registration.
func AuthRateLimitConfig(cfg *config.Config) RateLimitConfig {
	return RateLimitConfig{
		Limit:      cfg.RateLimitLoginThreshold,
		Window:     window(cfg),
		KeyFunc:    clientIPKey,
		KeyPrefix:  "rl:auth:",
		FailClosed: true,
	}
}

// UploadRateLimitConfig throttles image upload requests per client IP.
func UploadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:     10,
		Window:    time.Minute,
		KeyFunc:   clientIPKey,
		KeyPrefix: "rl:upload:",
	}
}

// RateLimitMiddleware counts requests in Redis when it is connected and in
// process memory otherwise.
func RateLimitMiddleware(rl RateLimitConfig) gin.HandlerFunc {
	if rl.Limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if rl.KeyFunc == nil {
		rl.KeyFunc = clientIPKey
	}
	sweepOnce.Do(sweepLocalCounters)

	return func(c *gin.Context) {
		key := rl.KeyPrefix + rl.KeyFunc(c)

		var (
			count   int
			resetAt time.Time
		)
		if client := redis.Client(); client != nil {
			var err error
			count, resetAt, err = countInRedis(c.Request.Context(), client, key, rl.Window)
			if err != nil {
				if rl.FailClosed {
					logRateLimitError(c, err)
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				count, resetAt = countLocally(key, rl.Window, time.Now())
			}
		} else {
			count, resetAt = countLocally(key, rl.Window, time.Now())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > rl.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			security.DefaultLogger().LogRateLimitTriggered(
				c.Request.Context(),
				c.ClientIP(),
				c.GetHeader("User-Agent"),
				c.GetString(RequestIDKey),
				c.FullPath(),
			)
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.Limit-count))
		c.Next()
	}
}

func countInRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, int(window.Seconds())).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

func countLocally(key string, window time.Duration, now time.Time) (int, time.Time) {
	v, _ := localCounters.LoadOrStore(key, &windowCounter{resetAt: now.Add(window)})
	wc := v.(*windowCounter)

	wc.mu.Lock()
	defer wc.mu.Unlock()
	if now.After(wc.resetAt) {
		wc.count = 0
		wc.resetAt = now.Add(window)
	}
	wc.count++
	return wc.count, wc.resetAt
}

func logRateLimitError(c *gin.Context, err error) {
	security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
		Event:       security.EventRateLimitTriggered,
		SubjectType: "system",
		IP:          c.ClientIP(),
		RequestID:   c.GetString(RequestIDKey),
		Details: map[string]interface{}{
			"error_type": "redis_error",
			"error":      err.Error(),
		},
	})
}

func GlobalRateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	return RateLimitMiddleware(GlobalRateLimitConfig(cfg))
}

func StrictRateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	return RateLimitMiddleware(AuthRateLimitConfig(cfg))
}
