package aionaraRoutes

import (
	"time"

	"ruha/config"
	aionaraController "ruha/controllers/aionara"
	"ruha/middleware"
	aionaraValidator "ruha/validators/aionara"

	"github.com/gofiber/fiber/v2"
)

func SetupAionaraRoutes(api fiber.Router) {
	aionaraGroup := api.Group("/aionara", middleware.JWTMiddleware)

	aionaraGroup.Post("/chat",
		middleware.RateLimit("aionara", config.AppConfig.ChatRateLimit, time.Minute),
		aionaraValidator.Chat(),
		aionaraController.Chat,
	)
}
