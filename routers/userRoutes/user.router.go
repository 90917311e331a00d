package userRoutes

import (
	athenaeumController "ruha/controllers/athenaeum"
	userController "ruha/controllers/userControllers"
	"ruha/middleware"
	userValidator "ruha/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(api fiber.Router) {
	userGroup := api.Group("/user", middleware.JWTMiddleware)

	userGroup.Get("/me", userController.GetProfile)
	userGroup.Put("/me", userValidator.UpdateProfile(), userController.UpdateProfile)
	userGroup.Get("/badges", athenaeumController.GetUserBadges)
}
