package grimoireController

import (
	"errors"

	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models/grimoire"
	grimoireValidator "ruha/validators/grimoire"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// findOwnGrimoire loads a grimoire of the caller. Other users' grimoires answer 404.
func findOwnGrimoire(c *fiber.Ctx, userID, id string) (*grimoire.Grimoire, error) {
	var book grimoire.Grimoire
	err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Grimoire not found!", nil)
	}
	if err != nil {
		logger.Log.Error("Failed to fetch grimoire", "grimoire_id", id, "error", err)
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch grimoire!", nil)
	}
	return &book, nil
}

func GetGrimoires(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var books []grimoire.Grimoire
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&books).Error; err != nil {
		logger.Log.Error("Failed to fetch grimoires", "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch grimoires!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grimoires fetched successfully!", books)
}

func GetGrimoire(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	book, err := findOwnGrimoire(c, userID, c.Locals("id").(string))
	if book == nil {
		return err
	}

	var entries int64
	if err := database.Database.Db.Model(&grimoire.Entry{}).Where("grimoire_id = ? AND is_deleted = ?", book.ID, false).Count(&entries).Error; err != nil {
		logger.Log.Error("Failed to count grimoire entries", "grimoire_id", book.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch grimoire!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grimoire fetched successfully!", fiber.Map{
		"grimoire":    book,
		"entry_count": entries,
	})
}

func CreateGrimoire(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedGrimoire").(*grimoireValidator.CreateGrimoireRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	book := grimoire.Grimoire{
		UserID:      userID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Element:     reqData.Element,
		IsPrivate:   true,
	}
	if reqData.IsPrivate != nil {
		book.IsPrivate = *reqData.IsPrivate
	}
	// gorm skips zero values that have a column default, so write IsPrivate explicitly.
	if err := database.Database.Db.Select("*").Create(&book).Error; err != nil {
		logger.Log.Error("Failed to create grimoire", "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create grimoire!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Grimoire created successfully!", book)
}

func UpdateGrimoire(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedGrimoireUpdate").(*grimoireValidator.UpdateGrimoireRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	book, err := findOwnGrimoire(c, userID, c.Locals("id").(string))
	if book == nil {
		return err
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
		book.Title = *reqData.Title
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
		book.Description = *reqData.Description
	}
	if reqData.Element != nil {
		updates["element"] = *reqData.Element
		book.Element = *reqData.Element
	}
	if reqData.IsPrivate != nil {
		updates["is_private"] = *reqData.IsPrivate
		book.IsPrivate = *reqData.IsPrivate
	}
	if len(updates) > 0 {
		if err := database.Database.Db.Model(&grimoire.Grimoire{}).Where("id = ?", book.ID).Updates(updates).Error; err != nil {
			logger.Log.Error("Failed to update grimoire", "grimoire_id", book.ID, "error", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update grimoire!", nil)
		}
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grimoire updated successfully!", book)
}

// DeleteGrimoire soft-deletes the grimoire and its entries. XP already earned stays.
func DeleteGrimoire(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	book, err := findOwnGrimoire(c, userID, c.Locals("id").(string))
	if book == nil {
		return err
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&grimoire.Entry{}).Where("grimoire_id = ?", book.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&grimoire.Grimoire{}).Where("id = ?", book.ID).Update("is_deleted", true).Error
	})
	if err != nil {
		logger.Log.Error("Failed to delete grimoire", "grimoire_id", book.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete grimoire!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grimoire deleted successfully!", nil)
}
