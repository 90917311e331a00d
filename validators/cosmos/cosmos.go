package cosmosValidator

import (
	"strconv"
	"strings"
	"time"

	"ruha/middleware"
	"ruha/validators"

	"github.com/gofiber/fiber/v2"
)

type DeityRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Pantheon    string `json:"pantheon" validate:"required,max=100"`
	Domain      string `json:"domain" validate:"max=200"`
	Element     string `json:"element" validate:"omitempty,oneof=earth water air fire aether"`
	Description string `json:"description" validate:"max=5000"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

type SacredEventRequest struct {
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Description string     `json:"description" validate:"max=5000"`
	EventType   string     `json:"eventType" validate:"required,oneof=full_moon new_moon solstice equinox eclipse festival ritual"`
	StartsAt    time.Time  `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	DeityID     *string    `json:"deityId" validate:"omitempty,uuid"`
}

type SacredEventListRequest struct {
	Month    string `query:"month" json:"month" validate:"omitempty,datetime=2006-01"`
	Upcoming int    `query:"upcoming" json:"upcoming" validate:"gte=0,lte=100"`
}

type YearlyConfigRequest struct {
	Theme         string  `json:"theme" validate:"required,max=200"`
	Element       string  `json:"element" validate:"omitempty,oneof=earth water air fire aether"`
	RulingDeityID *string `json:"rulingDeityId" validate:"omitempty,uuid"`
	Notes         string  `json:"notes" validate:"max=5000"`
}

func Deity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(DeityRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Name = strings.TrimSpace(reqData.Name)
		c.Locals("validatedDeity", reqData)
		return c.Next()
	}
}

func SacredEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SacredEventRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}

		errors := make(map[string]string)
		if reqData.StartsAt.IsZero() {
			errors["startsAt"] = "startsAt is required!"
		}
		if reqData.EndsAt != nil && reqData.EndsAt.Before(reqData.StartsAt) {
			errors["endsAt"] = "endsAt must not be before startsAt!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSacredEvent", reqData)
		return c.Next()
	}
}

func SacredEventList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SacredEventListRequest)
		if ok, err := validators.Query(c, reqData); !ok {
			return err
		}
		c.Locals("validatedSacredEventList", reqData)
		return c.Next()
	}
}

func YearlyConfig() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(YearlyConfigRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedYearlyConfig", reqData)
		return c.Next()
	}
}

// Year validates the :year route parameter.
func Year() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := strconv.Atoi(c.Params("year"))
		if err != nil || year < 1900 || year > 3000 {
			return middleware.ValidationErrorResponse(c, map[string]string{"year": "Invalid year!"})
		}
		c.Locals("year", year)
		return c.Next()
	}
}
