package middleware

import (
	"time"

	"ruha/database"
	"ruha/logger"

	"github.com/gofiber/fiber/v2"
)

// RateLimit caps requests per user per window using the shared redis counter.
// Without redis, or with limit <= 0, every request passes.
func RateLimit(scope string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if database.Redis == nil || limit <= 0 {
			return c.Next()
		}

		key := scope + ":" + c.IP()
		if userID, ok := UserID(c); ok {
			key = scope + ":" + userID
		}

		allowed, err := database.CheckRateLimit(c.UserContext(), database.Redis, key, limit, window)
		if err != nil {
			logger.Log.Warn("Rate limit check failed, letting request through", "key", key, "error", err)
			return c.Next()
		}
		if !allowed {
			return JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many requests, please slow down.", nil)
		}
		return c.Next()
	}
}
