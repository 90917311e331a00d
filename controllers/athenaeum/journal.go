package athenaeumController

import (
	"ruha/config"
	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models/athenaeum"
	"ruha/services/progression"
	"ruha/utils"
	"ruha/validators"
	athenaeumValidator "ruha/validators/athenaeum"

	"github.com/gofiber/fiber/v2"
)

// CreateJournalEntry stores a reflection and awards the journal xp.
func CreateJournalEntry(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedJournalEntry").(*athenaeumValidator.JournalEntryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	entry := &athenaeum.JournalEntry{
		Content:  reqData.Content,
		CourseID: reqData.CourseID,
		LessonID: reqData.LessonID,
	}
	out, err := progression.RecordJournalEntry(database.Database.Db, userID, entry, config.AppConfig.JournalXP)
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to save journal entry!")
	}

	utils.NotifyCertificates(database.Database.Db, userID, out.Certificates)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Journal entry saved.", fiber.Map{
		"entry":   entry,
		"outcome": out,
	})
}

func GetJournalEntries(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	page := validators.PageFrom(c)

	db := database.Database.Db.Model(&athenaeum.JournalEntry{}).Where("user_id = ?", userID)
	if courseID := c.Query("courseId"); courseID != "" {
		db = db.Where("course_id = ?", courseID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		logger.Log.Error("Failed to count journal entries", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch journal entries!", nil)
	}
	var entries []athenaeum.JournalEntry
	if err := db.Order("created_at desc").Offset(page.Offset()).Limit(page.Limit).Find(&entries).Error; err != nil {
		logger.Log.Error("Failed to fetch journal entries", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch journal entries!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Journal entries fetched successfully!", fiber.Map{
		"entries": entries,
		"pagination": fiber.Map{
			"total": total,
			"page":  page.Page,
			"limit": page.Limit,
		},
	})
}
