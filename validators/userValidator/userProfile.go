package userValidator

import (
	"ruha/validators"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfileRequest carries the editable profile fields; nil means unchanged.
type UpdateProfileRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=100"`
	ElementalPath  *string `json:"elementalPath" validate:"omitempty,oneof=earth water air fire aether mixed"`
	EventReminders *bool   `json:"eventReminders"`
}

func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProfileRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
