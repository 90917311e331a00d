package authValidator

import (
	"strings"

	"ruha/validators"

	"github.com/gofiber/fiber/v2"
)

type SignupRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8,max=72"`
	ElementalPath string `json:"elementalPath" validate:"omitempty,oneof=earth water air fire aether mixed"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// Signup validator middleware
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignupRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChangePasswordRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedChangePassword", reqData)
		return c.Next()
	}
}

// LoginHistoryList validates paging for the login history.
func LoginHistoryList() fiber.Handler {
	return validators.Paginate()
}
