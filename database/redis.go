package database

import (
	"context"
	"fmt"
	"time"

	"ruha/config"
	"ruha/logger"

	"github.com/redis/go-redis/v9"
)

// Redis is nil when REDIS_ADDR is not configured; callers must treat that as "disabled".
var Redis *redis.Client

func InitRedis() {
	if config.AppConfig.RedisAddr == "" {
		logger.Log.Info("REDIS_ADDR not set, rate limiting disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.Warn("Failed to connect to Redis, rate limiting disabled", "error", err)
		return
	}

	logger.Log.Info("Connected to Redis", "addr", config.AppConfig.RedisAddr)
	Redis = client
}

// rateLimitScript increments the window counter and starts its expiry in one step,
// so a counter can never outlive its window.
var rateLimitScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// CheckRateLimit counts a hit for key in a fixed window and reports whether it is within limit.
func CheckRateLimit(ctx context.Context, client *redis.Client, key string, limit int, window time.Duration) (bool, error) {
	if client == nil || limit <= 0 {
		return true, nil
	}

	fullKey := fmt.Sprintf("rate_limit:%s", key)
	count, err := rateLimitScript.Run(ctx, client, []string{fullKey}, window.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return count <= int64(limit), nil
}
