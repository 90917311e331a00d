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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func findCourse(c *fiber.Ctx, id string) (*athenaeum.Course, error) {
	var course athenaeum.Course
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		logger.Log.Error("Failed to fetch course", "course_id", id, "error", err)
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	return &course, nil
}

// checkPrerequisites reports the first invalid prerequisite id, or "" when all exist.
func checkPrerequisites(courseID string, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}
	var found []string
	if err := database.Database.Db.Model(&athenaeum.Course{}).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Pluck("id", &found).Error; err != nil {
		return "", err
	}
	exists := make(map[string]bool, len(found))
	for _, id := range found {
		exists[id] = true
	}
	for _, id := range ids {
		if id == courseID || !exists[id] {
			return id, nil
		}
	}
	return "", nil
}

// AdminGetCourses lists every course, published or not.
func AdminGetCourses(c *fiber.Ctx) error {
	page := validators.PageFrom(c)
	db := database.Database.Db.Model(&athenaeum.Course{}).Where("is_deleted = ?", false)
	if wing := c.Query("wing"); wing != "" {
		db = db.Where("wing = ?", wing)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		logger.Log.Error("Failed to count courses", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	var courses []athenaeum.Course
	if err := db.Order("created_at desc").Offset(page.Offset()).Limit(page.Limit).Find(&courses).Error; err != nil {
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

func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*athenaeumValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	db := database.Database.Db

	var existing int64
	if err := db.Model(&athenaeum.Course{}).Where("code = ?", reqData.Code).Count(&existing).Error; err != nil {
		logger.Log.Error("Failed to check course code", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}
	if existing > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course code already exists!", nil)
	}

	bad, err := checkPrerequisites("", reqData.Prerequisites)
	if err != nil {
		logger.Log.Error("Failed to check prerequisites", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}
	if bad != "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"prerequisites": "Unknown prerequisite course " + bad + "!"})
	}

	course := athenaeum.Course{
		Code:          reqData.Code,
		Title:         reqData.Title,
		Description:   reqData.Description,
		Wing:          reqData.Wing,
		Level:         reqData.Level,
		XPReward:      reqData.XPReward,
		Prerequisites: datatypes.JSONSlice[string](reqData.Prerequisites),
		ThumbnailURL:  reqData.ThumbnailURL,
	}
	if err := db.Create(&course).Error; err != nil {
		logger.Log.Error("Failed to create course", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func AdminUpdateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseUpdate").(*athenaeumValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	course, err := findCourse(c, c.Locals("id").(string))
	if course == nil {
		return err
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.Wing != nil {
		updates["wing"] = *reqData.Wing
	}
	if reqData.Level != nil {
		updates["level"] = *reqData.Level
	}
	if reqData.XPReward != nil {
		updates["xp_reward"] = *reqData.XPReward
	}
	if reqData.ThumbnailURL != nil {
		updates["thumbnail_url"] = *reqData.ThumbnailURL
	}
	if reqData.Prerequisites != nil {
		bad, err := checkPrerequisites(course.ID, *reqData.Prerequisites)
		if err != nil {
			logger.Log.Error("Failed to check prerequisites", "error", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}
		if bad != "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"prerequisites": "Unknown prerequisite course " + bad + "!"})
		}
		updates["prerequisites"] = datatypes.JSONSlice[string](*reqData.Prerequisites)
	}

	if len(updates) > 0 {
		if err := database.Database.Db.Model(course).Updates(updates).Error; err != nil {
			logger.Log.Error("Failed to update course", "course_id", course.ID, "error", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}
	}
	if err := database.Database.Db.First(course, "id = ?", course.ID).Error; err != nil {
		logger.Log.Error("Failed to reload course", "course_id", course.ID, "error", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func AdminPublishCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPublish").(*athenaeumValidator.PublishCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	course, err := findCourse(c, c.Locals("id").(string))
	if course == nil {
		return err
	}

	if err := database.Database.Db.Model(course).Update("is_published", *reqData.IsPublished).Error; err != nil {
		logger.Log.Error("Failed to publish course", "course_id", course.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}
	course.IsPublished = *reqData.IsPublished

	message := "Course unpublished."
	if course.IsPublished {
		message = "Course published."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, course)
}

// AdminDeleteCourse soft-deletes a course. Enrollments and certificates stay.
func AdminDeleteCourse(c *fiber.Ctx) error {
	course, err := findCourse(c, c.Locals("id").(string))
	if course == nil {
		return err
	}
	if err := database.Database.Db.Model(course).Updates(map[string]interface{}{"is_deleted": true, "is_published": false}).Error; err != nil {
		logger.Log.Error("Failed to delete course", "course_id", course.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

func AdminGetLessons(c *fiber.Ctx) error {
	course, err := findCourse(c, c.Locals("id").(string))
	if course == nil {
		return err
	}
	var lessons []athenaeum.Lesson
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("sequence asc").Find(&lessons).Error; err != nil {
		logger.Log.Error("Failed to fetch lessons", "course_id", course.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", lessons)
}

func AdminCreateLesson(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLesson").(*athenaeumValidator.CreateLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	course, err := findCourse(c, c.Locals("id").(string))
	if course == nil {
		return err
	}

	db := database.Database.Db
	taken, err := orderTaken(course.ID, reqData.Order, "")
	if err != nil {
		logger.Log.Error("Failed to check lesson order", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}
	if taken {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A lesson already uses this order!", nil)
	}

	lesson := athenaeum.Lesson{
		CourseID: course.ID,
		Order:    reqData.Order,
		Title:    reqData.Title,
		Content:  reqData.Content,
		VideoURL: reqData.VideoURL,
		XPReward: reqData.XPReward,
	}
	if err := db.Create(&lesson).Error; err != nil {
		logger.Log.Error("Failed to create lesson", "course_id", course.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// orderTaken reports whether another active lesson of the course sits at order.
func orderTaken(courseID string, order int, exceptID string) (bool, error) {
	query := database.Database.Db.Model(&athenaeum.Lesson{}).
		Where("course_id = ? AND sequence = ? AND is_deleted = ?", courseID, order, false)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func findLesson(c *fiber.Ctx) (*athenaeum.Lesson, error) {
	var lesson athenaeum.Lesson
	id := c.Locals("id").(string)
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}
	if err != nil {
		logger.Log.Error("Failed to fetch lesson", "lesson_id", id, "error", err)
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}
	return &lesson, nil
}

func AdminUpdateLesson(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLessonUpdate").(*athenaeumValidator.UpdateLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	lesson, err := findLesson(c)
	if lesson == nil {
		return err
	}

	updates := map[string]interface{}{}
	if reqData.Order != nil && *reqData.Order != lesson.Order {
		taken, err := orderTaken(lesson.CourseID, *reqData.Order, lesson.ID)
		if err != nil {
			logger.Log.Error("Failed to check lesson order", "error", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
		}
		if taken {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A lesson already uses this order!", nil)
		}
		updates["sequence"] = *reqData.Order
	}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Content != nil {
		updates["content"] = *reqData.Content
	}
	if reqData.VideoURL != nil {
		updates["video_url"] = *reqData.VideoURL
	}
	if reqData.XPReward != nil {
		updates["xp_reward"] = *reqData.XPReward
	}
	if len(updates) > 0 {
		if err := database.Database.Db.Model(lesson).Updates(updates).Error; err != nil {
			logger.Log.Error("Failed to update lesson", "lesson_id", lesson.ID, "error", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
		}
	}
	if err := database.Database.Db.First(lesson, "id = ?", lesson.ID).Error; err != nil {
		logger.Log.Error("Failed to reload lesson", "lesson_id", lesson.ID, "error", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminDeleteLesson soft-deletes a lesson and releases its order for a new lesson.
// Stored progress is never lowered.
func AdminDeleteLesson(c *fiber.Ctx) error {
	lesson, err := findLesson(c)
	if lesson == nil {
		return err
	}
	err = database.Database.Db.Model(&athenaeum.Lesson{}).Where("id = ?", lesson.ID).
		Updates(map[string]interface{}{"is_deleted": true, "sequence": nil}).Error
	if err != nil {
		logger.Log.Error("Failed to delete lesson", "lesson_id", lesson.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// AdminGetCourseEnrollments lists the learners enrolled in a course.
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	course, err := findCourse(c, c.Locals("id").(string))
	if course == nil {
		return err
	}
	page := validators.PageFrom(c)

	type EnrollmentWithUser struct {
		athenaeum.Enrollment
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	db := database.Database.Db.Model(&athenaeum.Enrollment{}).Where("enrollments.course_id = ?", course.ID)
	if status := c.Query("status"); status != "" {
		db = db.Where("enrollments.status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		logger.Log.Error("Failed to count enrollments", "course_id", course.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	var enrollments []EnrollmentWithUser
	err = db.Select("enrollments.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = enrollments.user_id").
		Order("enrollments.enrolled_at desc").
		Offset(page.Offset()).Limit(page.Limit).
		Scan(&enrollments).Error
	if err != nil {
		logger.Log.Error("Failed to fetch enrollments", "course_id", course.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course enrollments fetched successfully!", fiber.Map{
		"course":      course,
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page.Page,
			"limit": page.Limit,
		},
	})
}
