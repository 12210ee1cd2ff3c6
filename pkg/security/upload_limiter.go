package security

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"alumni-network-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// UploadLimiter caps image uploads per user with a Redis sliding window.
type UploadLimiter struct {
	maxPerHour int
	client     func() *goredis.Client
	now        func() time.Time
}

// KEYS[1] = window key, ARGV = limit, window seconds, now. Returns 1 if allowed.
const uploadRateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)

if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`

// NewUploadLimiter allows perHour uploads per user (default 20).
func NewUploadLimiter(perHour int) *UploadLimiter {
	if perHour <= 0 {
		perHour = 20
	}
	return &UploadLimiter{
		maxPerHour: perHour,
		client:     redis.Client,
		now:        time.Now,
	}
}

// Allow reports whether userID may upload another image. Without Redis
// uploads are allowed.
func (ul *UploadLimiter) Allow(ctx context.Context, userID int64) (bool, error) {
	client := ul.client()
	if client == nil {
		return true, nil
	}

	key := "ratelimit:upload:user:" + strconv.FormatInt(userID, 10)
	result, err := client.Eval(ctx, uploadRateLimitScript, []string{key}, ul.maxPerHour, 3600, ul.now().Unix()).Result()
	if err != nil {
		return false, fmt.Errorf("upload rate limit check failed: %w", err)
	}
	allowed, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected result type from rate limit script")
	}
	return allowed == 1, nil
}
