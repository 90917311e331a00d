package athenaeumValidator

import (
	"strings"

	"ruha/validators"

	"github.com/gofiber/fiber/v2"
)

type CourseListRequest struct {
	Wing  string `query:"wing" json:"wing" validate:"omitempty,oneof=sanctum orrery"`
	Level int    `query:"level" json:"level" validate:"omitempty,oneof=100 200 300 400"`
}

type CreateCourseRequest struct {
	Code          string   `json:"code" validate:"required,min=3,max=32"`
	Title         string   `json:"title" validate:"required,min=3,max=200"`
	Description   string   `json:"description" validate:"max=5000"`
	Wing          string   `json:"wing" validate:"required,oneof=sanctum orrery"`
	Level         int      `json:"level" validate:"omitempty,oneof=100 200 300 400"`
	XPReward      int      `json:"xpReward" validate:"gte=0,lte=10000"`
	Prerequisites []string `json:"prerequisites" validate:"omitempty,dive,uuid"`
	ThumbnailURL  string   `json:"thumbnailUrl" validate:"omitempty,url"`
}

type UpdateCourseRequest struct {
	Title         *string   `json:"title" validate:"omitempty,min=3,max=200"`
	Description   *string   `json:"description" validate:"omitempty,max=5000"`
	Wing          *string   `json:"wing" validate:"omitempty,oneof=sanctum orrery"`
	Level         *int      `json:"level" validate:"omitempty,oneof=100 200 300 400"`
	XPReward      *int      `json:"xpReward" validate:"omitempty,gte=0,lte=10000"`
	Prerequisites *[]string `json:"prerequisites" validate:"omitempty,dive,uuid"`
	ThumbnailURL  *string   `json:"thumbnailUrl" validate:"omitempty,url"`
}

type PublishCourseRequest struct {
	IsPublished *bool `json:"isPublished" validate:"required"`
}

type CreateLessonRequest struct {
	Order    int    `json:"order" validate:"required,gte=1"`
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Content  string `json:"content"`
	VideoURL string `json:"videoUrl" validate:"omitempty,url"`
	XPReward int    `json:"xpReward" validate:"gte=0,lte=1000"`
}

type UpdateLessonRequest struct {
	Order    *int    `json:"order" validate:"omitempty,gte=1"`
	Title    *string `json:"title" validate:"omitempty,min=3,max=200"`
	Content  *string `json:"content"`
	VideoURL *string `json:"videoUrl" validate:"omitempty,url"`
	XPReward *int    `json:"xpReward" validate:"omitempty,gte=0,lte=1000"`
}

// CourseList validates the public catalogue filters.
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseListRequest)
		if ok, err := validators.Query(c, reqData); !ok {
			return err
		}
		page := new(validators.Pagination)
		if ok, err := validators.Query(c, page); !ok {
			return err
		}
		c.Locals("validatedCourseList", reqData)
		c.Locals("pagination", page)
		return c.Next()
	}
}

// CreateCourse validates admin course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))
		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Level == 0 {
			reqData.Level = 100
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates admin course update request
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PublishCourseRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedPublish", reqData)
		return c.Next()
	}
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateLessonRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateLessonRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}
