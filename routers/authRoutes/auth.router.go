package authRoutes

import (
	authController "ruha/controllers/auth"
	"ruha/middleware"
	authValidator "ruha/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(api fiber.Router) {
	authGroup := api.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/login/history", authValidator.LoginHistoryList(), middleware.JWTMiddleware, authController.LoginHistoryList)
	authGroup.Put("/change/password", authValidator.ChangePassword(), middleware.JWTMiddleware, authController.ChangePassword)
}
