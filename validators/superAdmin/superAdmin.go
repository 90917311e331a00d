package superAdminValidator

import (
	"strings"

	"ruha/validators"

	"github.com/gofiber/fiber/v2"
)

type UserListRequest struct {
	Role   string `query:"role" json:"role" validate:"omitempty,oneof=learner instructor admin"`
	Search string `query:"search" json:"search" validate:"max=100"`
}

// RegisterStaffRequest creates an instructor or admin account directly.
type RegisterStaffRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=instructor admin"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=learner instructor admin"`
}

func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UserListRequest)
		if ok, err := validators.Query(c, reqData); !ok {
			return err
		}
		page := new(validators.Pagination)
		if ok, err := validators.Query(c, page); !ok {
			return err
		}
		reqData.Search = strings.TrimSpace(reqData.Search)
		c.Locals("validatedUserList", reqData)
		c.Locals("pagination", page)
		return c.Next()
	}
}

func RegisterStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterStaffRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		reqData.Name = strings.TrimSpace(reqData.Name)
		c.Locals("validatedStaff", reqData)
		return c.Next()
	}
}

func UpdateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateRoleRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}
