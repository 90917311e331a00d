package athenaeumValidator

import (
	"strings"

	"ruha/middleware"
	"ruha/validators"

	"github.com/gofiber/fiber/v2"
)

type EnrollRequest struct {
	CourseID string `json:"courseId" validate:"required,uuid"`
}

type EnrollmentListRequest struct {
	Status string `query:"status" json:"status" validate:"omitempty,oneof=enrolled completed dropped"`
}

type JournalEntryRequest struct {
	Content  string  `json:"content" validate:"required,max=10000"`
	CourseID *string `json:"courseId" validate:"omitempty,uuid"`
	LessonID *string `json:"lessonId" validate:"omitempty,uuid"`
}

func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("courseId", reqData.CourseID)
		return c.Next()
	}
}

func EnrollmentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollmentListRequest)
		if ok, err := validators.Query(c, reqData); !ok {
			return err
		}
		page := new(validators.Pagination)
		if ok, err := validators.Query(c, page); !ok {
			return err
		}
		c.Locals("validatedEnrollmentList", reqData)
		c.Locals("pagination", page)
		return c.Next()
	}
}

func JournalEntry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(JournalEntryRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Content = strings.TrimSpace(reqData.Content)
		if reqData.Content == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"content": "content is required!"})
		}
		c.Locals("validatedJournalEntry", reqData)
		return c.Next()
	}
}
