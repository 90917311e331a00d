package grimoireRoutes

import (
	grimoireController "ruha/controllers/grimoire"
	"ruha/middleware"
	"ruha/validators"
	grimoireValidator "ruha/validators/grimoire"

	"github.com/gofiber/fiber/v2"
)

func SetupGrimoireRoutes(api fiber.Router) {
	grimoireGroup := api.Group("/grimoires", middleware.JWTMiddleware)
	grimoireGroup.Get("/", grimoireController.GetGrimoires)
	grimoireGroup.Post("/", grimoireValidator.CreateGrimoire(), grimoireController.CreateGrimoire)
	grimoireGroup.Get("/:id", validators.ParamID("id"), grimoireController.GetGrimoire)
	grimoireGroup.Put("/:id", validators.ParamID("id"), grimoireValidator.UpdateGrimoire(), grimoireController.UpdateGrimoire)
	grimoireGroup.Delete("/:id", validators.ParamID("id"), grimoireController.DeleteGrimoire)

	entryGroup := api.Group("/grimoire-entries", middleware.JWTMiddleware)
	entryGroup.Get("/", grimoireValidator.EntryList(), grimoireController.GetEntries)
	entryGroup.Post("/", grimoireValidator.CreateEntry(), grimoireController.CreateEntry)
	entryGroup.Put("/:id", validators.ParamID("id"), grimoireValidator.UpdateEntry(), grimoireController.UpdateEntry)
	entryGroup.Delete("/:id", validators.ParamID("id"), grimoireController.DeleteEntry)
}
