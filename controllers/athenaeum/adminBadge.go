package athenaeumController

import (
	"errors"

	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models/athenaeum"
	athenaeumValidator "ruha/validators/athenaeum"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func AdminCreateBadge(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBadge").(*athenaeumValidator.BadgeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	db := database.Database.Db

	var existing int64
	if err := db.Model(&athenaeum.Badge{}).Where("name = ?", reqData.Name).Count(&existing).Error; err != nil {
		logger.Log.Error("Failed to check badge name", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create badge!", nil)
	}
	if existing > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Badge name already exists!", nil)
	}

	badge := athenaeum.Badge{
		Name:         reqData.Name,
		Description:  reqData.Description,
		Icon:         reqData.Icon,
		Wing:         reqData.Wing,
		Requirements: datatypes.JSON(reqData.Requirements),
	}
	if err := db.Create(&badge).Error; err != nil {
		logger.Log.Error("Failed to create badge", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create badge!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Badge created successfully!", badge)
}

func findBadge(c *fiber.Ctx) (*athenaeum.Badge, error) {
	var badge athenaeum.Badge
	id := c.Locals("id").(string)
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&badge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Badge not found!", nil)
	}
	if err != nil {
		logger.Log.Error("Failed to fetch badge", "badge_id", id, "error", err)
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badge!", nil)
	}
	return &badge, nil
}

// AdminUpdateBadge replaces a badge's fields. Already earned badges are kept.
func AdminUpdateBadge(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBadge").(*athenaeumValidator.BadgeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	badge, err := findBadge(c)
	if badge == nil {
		return err
	}

	badge.Name = reqData.Name
	badge.Description = reqData.Description
	badge.Icon = reqData.Icon
	badge.Wing = reqData.Wing
	badge.Requirements = datatypes.JSON(reqData.Requirements)
	if err := database.Database.Db.Save(badge).Error; err != nil {
		logger.Log.Error("Failed to update badge", "badge_id", badge.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update badge!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badge updated successfully!", badge)
}

func AdminDeleteBadge(c *fiber.Ctx) error {
	badge, err := findBadge(c)
	if badge == nil {
		return err
	}
	if err := database.Database.Db.Model(badge).Update("is_deleted", true).Error; err != nil {
		logger.Log.Error("Failed to delete badge", "badge_id", badge.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete badge!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badge deleted successfully!", nil)
}
