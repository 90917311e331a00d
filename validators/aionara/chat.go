package aionaraValidator

import (
	"strings"

	"ruha/middleware"
	"ruha/validators"

	"github.com/gofiber/fiber/v2"
)

type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=4000"`
}

type ChatRequest struct {
	Message string     `json:"message" validate:"required,max=2000"`
	History []ChatTurn `json:"history" validate:"omitempty,max=50,dive"`
}

func Chat() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChatRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Message = strings.TrimSpace(reqData.Message)
		if reqData.Message == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"message": "message is required!"})
		}
		c.Locals("validatedChat", reqData)
		return c.Next()
	}
}
