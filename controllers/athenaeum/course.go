package athenaeumController

import (
	"errors"

	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models/athenaeum"
	"ruha/validators"
	athenaeumValidator "ruha/validators/athenaeum"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllCourses lists published courses, optionally filtered by wing and level.
func GetAllCourses(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedCourseList").(*athenaeumValidator.CourseListRequest)
	page := validators.PageFrom(c)

	db := database.Database.Db.Model(&athenaeum.Course{}).Where("is_deleted = ? AND is_published = ?", false, true)
	if reqData != nil && reqData.Wing != "" {
		db = db.Where("wing = ?", reqData.Wing)
	}
	if reqData != nil && reqData.Level != 0 {
		db = db.Where("level = ?", reqData.Level)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		logger.Log.Error("Failed to count courses", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var courses []athenaeum.Course
	if err := db.Order("level asc, code asc").Offset(page.Offset()).Limit(page.Limit).Find(&courses).Error; err != nil {
		logger.Log.Error("Failed to fetch courses", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page.Page,
			"limit": page.Limit,
		},
	})
}

// GetCourse returns a published course with its lessons and the caller's enrollment.
func GetCourse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("id").(string)
	db := database.Database.Db

	var course athenaeum.Course
	err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		logger.Log.Error("Failed to fetch course", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	var lessons []athenaeum.Lesson
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("sequence asc").Find(&lessons).Error; err != nil {
		logger.Log.Error("Failed to fetch lessons", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	var enrollment *athenaeum.Enrollment
	var current athenaeum.Enrollment
	err = db.Where("user_id = ? AND course_id = ?", userID, courseID).Order("enrolled_at desc").First(&current).Error
	if err == nil {
		enrollment = &current
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Error("Failed to fetch enrollment", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	var completed []string
	if err := db.Model(&athenaeum.LessonCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Pluck("lesson_id", &completed).Error; err != nil {
		logger.Log.Error("Failed to fetch lesson completions", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":            course,
		"lessons":           lessons,
		"enrollment":        enrollment,
		"completed_lessons": completed,
	})
}
