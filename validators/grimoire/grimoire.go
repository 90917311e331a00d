package grimoireValidator

import (
	"strings"

	"ruha/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateGrimoireRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Element     string `json:"element" validate:"omitempty,oneof=earth water air fire aether"`
	IsPrivate   *bool  `json:"isPrivate"`
}

type UpdateGrimoireRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Element     *string `json:"element" validate:"omitempty,oneof=earth water air fire aether"`
	IsPrivate   *bool   `json:"isPrivate"`
}

type CreateEntryRequest struct {
	GrimoireID string `json:"grimoireId" validate:"required,uuid"`
	Title      string `json:"title" validate:"required,min=1,max=200"`
	Content    string `json:"content" validate:"required,max=20000"`
	Mood       string `json:"mood" validate:"max=50"`
	MoonPhase  string `json:"moonPhase" validate:"omitempty,oneof=new waxing_crescent first_quarter waxing_gibbous full waning_gibbous last_quarter waning_crescent"`
}

type UpdateEntryRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content   *string `json:"content" validate:"omitempty,max=20000"`
	Mood      *string `json:"mood" validate:"omitempty,max=50"`
	MoonPhase *string `json:"moonPhase" validate:"omitempty,oneof=new waxing_crescent first_quarter waxing_gibbous full waning_gibbous last_quarter waning_crescent"`
}

type EntryListRequest struct {
	GrimoireID string `query:"grimoireId" json:"grimoireId" validate:"required,uuid"`
}

func CreateGrimoire() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateGrimoireRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		c.Locals("validatedGrimoire", reqData)
		return c.Next()
	}
}

func UpdateGrimoire() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateGrimoireRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedGrimoireUpdate", reqData)
		return c.Next()
	}
}

func CreateEntry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateEntryRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		c.Locals("validatedEntry", reqData)
		return c.Next()
	}
}

func UpdateEntry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateEntryRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedEntryUpdate", reqData)
		return c.Next()
	}
}

func EntryList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EntryListRequest)
		if ok, err := validators.Query(c, reqData); !ok {
			return err
		}
		c.Locals("grimoireId", reqData.GrimoireID)
		return c.Next()
	}
}
