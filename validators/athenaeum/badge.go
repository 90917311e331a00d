package athenaeumValidator

import (
	"encoding/json"

	"ruha/middleware"
	"ruha/services/progression"
	"ruha/validators"

	"github.com/gofiber/fiber/v2"
)

type BadgeRequest struct {
	Name         string          `json:"name" validate:"required,min=3,max=100"`
	Description  string          `json:"description" validate:"max=1000"`
	Icon         string          `json:"icon" validate:"max=255"`
	Wing         *string         `json:"wing" validate:"omitempty,oneof=sanctum orrery"`
	Requirements json.RawMessage `json:"requirements" validate:"required"`
}

// Badge validates badge create and update bodies, including the requirement rule.
func Badge() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BadgeRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		if _, err := progression.ParseBadgeRule(reqData.Requirements); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"requirements": err.Error()})
		}
		c.Locals("validatedBadge", reqData)
		return c.Next()
	}
}
