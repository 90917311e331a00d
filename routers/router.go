package routers

import (
	"ruha/config"
	superAdminController "ruha/controllers/superAdmin"
	"ruha/routers/adminRoutes"
	"ruha/routers/aionaraRoutes"
	"ruha/routers/athenaeumRoutes"
	"ruha/routers/authRoutes"
	"ruha/routers/cosmosRoutes"
	"ruha/routers/grimoireRoutes"
	"ruha/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
)

// NewApp builds the fiber app. Client addresses come from X-Forwarded-For only when
// the peer is a trusted proxy, and bodies may carry a full upload plus form overhead.
func NewApp(cfg *config.Config) *fiber.App {
	return fiber.New(fiber.Config{
		BodyLimit:               superAdminController.MaxUploadSize + 1<<20,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          cfg.TrustedProxies,
		EnableIPValidation:      true,
	})
}

// SetupRoutes mounts every route group under /api.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	authRoutes.SetupAuthRoutes(api)
	userRoutes.SetupUserRoutes(api)
	athenaeumRoutes.SetupAthenaeumRoutes(api)
	grimoireRoutes.SetupGrimoireRoutes(api)
	cosmosRoutes.SetupCosmosRoutes(api)
	aionaraRoutes.SetupAionaraRoutes(api)
	adminRoutes.SetupAdminRoutes(api)
}
