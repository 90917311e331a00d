package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"ruha/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Struct validates req against its `validate` tags and returns a field -> message map,
// empty when req is valid.
func Struct(req interface{}) map[string]string {
	errs := make(map[string]string)
	err := validate.Struct(req)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["request"] = err.Error()
		return errs
	}
	for _, fe := range fieldErrs {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", fe.Field())
	case "email":
		return "Invalid email!"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long!", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s!", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long!", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s!", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s!", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s!", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s!", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("%s must be a valid URL!", fe.Field())
	case "uuid":
		return fmt.Sprintf("%s must be a valid id!", fe.Field())
	}
	return fmt.Sprintf("%s is invalid!", fe.Field())
}

// Body parses the request body into req and validates it. When it returns false the
// error response has already been written and the caller returns the error as is.
func Body(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if errs := Struct(req); len(errs) > 0 {
		return false, middleware.ValidationErrorResponse(c, errs)
	}
	return true, nil
}

// Query is Body for query strings.
func Query(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.QueryParser(req); err != nil {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}
	if errs := Struct(req); len(errs) > 0 {
		return false, middleware.ValidationErrorResponse(c, errs)
	}
	return true, nil
}

// Pagination is the page/limit pair list endpoints accept.
type Pagination struct {
	Page  int `query:"page" json:"page" validate:"gte=0"`
	Limit int `query:"limit" json:"limit" validate:"gte=0,lte=100"`
}

// Paginate is a validator middleware storing the page/limit pair under "pagination".
func Paginate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := new(Pagination)
		if ok, err := Query(c, page); !ok {
			return err
		}
		c.Locals("pagination", page)
		return c.Next()
	}
}

// PageFrom returns the pagination stored by Paginate, or the defaults.
func PageFrom(c *fiber.Ctx) *Pagination {
	page, ok := c.Locals("pagination").(*Pagination)
	if !ok {
		page = &Pagination{}
	}
	page.Normalize()
	return page
}

// Offset is the number of rows to skip for the current page.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Normalize fills defaults and returns the offset.
func (p *Pagination) Normalize() int {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	return p.Offset()
}

// ParamID validates that the route parameter name holds a record id and stores it in
// c.Locals under the same name.
func ParamID(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Params(name))
		if err := validate.Var(id, "required,uuid"); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{name: "Invalid " + name + "!"})
		}
		c.Locals(name, id)
		return c.Next()
	}
}
