package athenaeumController

import (
	"ruha/config"
	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models"
	"ruha/models/athenaeum"
	"ruha/services/progression"
	"ruha/utils"
	"ruha/validators"
	athenaeumValidator "ruha/validators/athenaeum"

	"github.com/gofiber/fiber/v2"
)

func policy() progression.Policy {
	return progression.Policy{EnforcePrerequisites: config.AppConfig.EnforcePrerequisites}
}

func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseId").(string)

	out, err := progression.Enroll(database.Database.Db, policy(), userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to enroll in course!")
	}

	var user models.User
	var course athenaeum.Course
	db := database.Database.Db
	if db.Select("id", "name", "email").Where("id = ?", userID).First(&user).Error == nil &&
		db.Select("id", "title").Where("id = ?", courseID).First(&course).Error == nil {
		utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", out.Enrollment)
}

func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, _ := c.Locals("validatedEnrollmentList").(*athenaeumValidator.EnrollmentListRequest)
	page := validators.PageFrom(c)

	type EnrollmentWithCourse struct {
		athenaeum.Enrollment
		CourseTitle string `json:"course_title"`
		CourseCode  string `json:"course_code"`
		Wing        string `json:"wing"`
	}

	db := database.Database.Db.Model(&athenaeum.Enrollment{}).Where("enrollments.user_id = ?", userID)
	if reqData != nil && reqData.Status != "" {
		db = db.Where("enrollments.status = ?", reqData.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		logger.Log.Error("Failed to count enrollments", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	var enrollments []EnrollmentWithCourse
	err := db.Select("enrollments.*, courses.title AS course_title, courses.code AS course_code, courses.wing AS wing").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Order("enrollments.enrolled_at desc").
		Offset(page.Offset()).Limit(page.Limit).
		Scan(&enrollments).Error
	if err != nil {
		logger.Log.Error("Failed to fetch enrollments", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page.Page,
			"limit": page.Limit,
		},
	})
}

func CompleteCourse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseId").(string)

	out, err := progression.CompleteCourse(database.Database.Db, userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to complete course!")
	}
	if out.AlreadyDone {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course already completed.", out)
	}

	utils.NotifyCertificates(database.Database.Db, userID, out.Certificates)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course completed successfully!", out)
}

func DropCourse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseId").(string)

	enrollment, err := progression.DropCourse(database.Database.Db, userID, courseID)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to drop course!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course dropped.", enrollment)
}

func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonID := c.Locals("id").(string)

	out, err := progression.CompleteLesson(database.Database.Db, userID, lessonID)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to complete lesson!")
	}
	if out.AlreadyDone {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson already completed.", out)
	}

	utils.NotifyCertificates(database.Database.Db, userID, out.Certificates)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completed!", out)
}
