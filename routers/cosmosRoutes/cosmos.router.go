package cosmosRoutes

import (
	cosmosController "ruha/controllers/cosmos"
	"ruha/middleware"
	"ruha/models"
	"ruha/validators"
	cosmosValidator "ruha/validators/cosmos"

	"github.com/gofiber/fiber/v2"
)

// SetupCosmosRoutes mounts the public calendar. Event creation also lives here
// for admins; the rest of event management is under /admin.
func SetupCosmosRoutes(api fiber.Router) {
	api.Get("/deities", cosmosController.GetDeities)
	api.Get("/deities/:id", validators.ParamID("id"), cosmosController.GetDeity)

	eventGroup := api.Group("/sacred-events")
	eventGroup.Get("/", cosmosValidator.SacredEventList(), cosmosController.GetSacredEvents)
	eventGroup.Get("/:id", validators.ParamID("id"), cosmosController.GetSacredEvent)
	eventGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin),
		cosmosValidator.SacredEvent(), cosmosController.AdminCreateSacredEvent)

	api.Get("/yearly-config/:year", cosmosValidator.Year(), cosmosController.GetYearlyConfig)
}
