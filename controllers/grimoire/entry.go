package grimoireController

import (
	"errors"

	"ruha/config"
	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models/grimoire"
	"ruha/services/progression"
	"ruha/utils"
	grimoireValidator "ruha/validators/grimoire"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetEntries(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	book, err := findOwnGrimoire(c, userID, c.Locals("grimoireId").(string))
	if book == nil {
		return err
	}

	var entries []grimoire.Entry
	if err := database.Database.Db.Where("grimoire_id = ? AND is_deleted = ?", book.ID, false).
		Order("created_at desc").Find(&entries).Error; err != nil {
		logger.Log.Error("Failed to fetch grimoire entries", "grimoire_id", book.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch entries!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Entries fetched successfully!", entries)
}

// CreateEntry writes a page into one of the caller's grimoires and awards xp for it.
func CreateEntry(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedEntry").(*grimoireValidator.CreateEntryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	book, err := findOwnGrimoire(c, userID, reqData.GrimoireID)
	if book == nil {
		return err
	}

	entry := grimoire.Entry{
		GrimoireID: book.ID,
		UserID:     userID,
		Title:      reqData.Title,
		Content:    reqData.Content,
		Mood:       reqData.Mood,
		MoonPhase:  reqData.MoonPhase,
		XPAwarded:  config.AppConfig.GrimoireEntryXP,
	}

	var out *progression.Outcome
	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		var err error
		out, err = progression.GrantXP(tx, userID, entry.XPAwarded)
		return err
	})
	if err != nil {
		return middleware.ServiceError(c, err, "Failed to save entry!")
	}

	utils.NotifyCertificates(database.Database.Db, userID, out.Certificates)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Entry saved.", fiber.Map{
		"entry":   entry,
		"outcome": out,
	})
}

func findOwnEntry(c *fiber.Ctx, userID string) (*grimoire.Entry, error) {
	var entry grimoire.Entry
	id := c.Locals("id").(string)
	err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Entry not found!", nil)
	}
	if err != nil {
		logger.Log.Error("Failed to fetch grimoire entry", "entry_id", id, "error", err)
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch entry!", nil)
	}
	return &entry, nil
}

func UpdateEntry(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedEntryUpdate").(*grimoireValidator.UpdateEntryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	entry, err := findOwnEntry(c, userID)
	if entry == nil {
		return err
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
		entry.Title = *reqData.Title
	}
	if reqData.Content != nil {
		updates["content"] = *reqData.Content
		entry.Content = *reqData.Content
	}
	if reqData.Mood != nil {
		updates["mood"] = *reqData.Mood
		entry.Mood = *reqData.Mood
	}
	if reqData.MoonPhase != nil {
		updates["moon_phase"] = *reqData.MoonPhase
		entry.MoonPhase = *reqData.MoonPhase
	}
	if len(updates) > 0 {
		if err := database.Database.Db.Model(&grimoire.Entry{}).Where("id = ?", entry.ID).Updates(updates).Error; err != nil {
			logger.Log.Error("Failed to update grimoire entry", "entry_id", entry.ID, "error", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update entry!", nil)
		}
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Entry updated successfully!", entry)
}

// DeleteEntry soft-deletes a page. The xp it earned is not taken back.
func DeleteEntry(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	entry, err := findOwnEntry(c, userID)
	if entry == nil {
		return err
	}
	if err := database.Database.Db.Model(&grimoire.Entry{}).Where("id = ?", entry.ID).Update("is_deleted", true).Error; err != nil {
		logger.Log.Error("Failed to delete grimoire entry", "entry_id", entry.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete entry!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Entry deleted successfully!", nil)
}
