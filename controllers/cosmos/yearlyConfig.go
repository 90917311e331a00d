package cosmosController

import (
	"errors"

	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models/cosmos"
	cosmosValidator "ruha/validators/cosmos"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetYearlyConfig(c *fiber.Ctx) error {
	year := c.Locals("year").(int)

	var cfg cosmos.YearlyConfiguration
	err := database.Database.Db.Where("year = ?", year).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No configuration for this year!", nil)
	}
	if err != nil {
		logger.Log.Error("Failed to fetch yearly configuration", "year", year, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch yearly configuration!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Yearly configuration fetched successfully!", cfg)
}

// AdminUpsertYearlyConfig creates or replaces the configuration of a year.
func AdminUpsertYearlyConfig(c *fiber.Ctx) error {
	year := c.Locals("year").(int)
	reqData, ok := c.Locals("validatedYearlyConfig").(*cosmosValidator.YearlyConfigRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	found, err := deityExists(reqData.RulingDeityID)
	if err != nil {
		logger.Log.Error("Failed to check deity", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save yearly configuration!", nil)
	}
	if !found {
		return middleware.ValidationErrorResponse(c, map[string]string{"rulingDeityId": "Unknown deity!"})
	}

	db := database.Database.Db
	cfg := cosmos.YearlyConfiguration{
		Year:          year,
		Theme:         reqData.Theme,
		Element:       reqData.Element,
		RulingDeityID: reqData.RulingDeityID,
		Notes:         reqData.Notes,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"theme", "element", "ruling_deity_id", "notes", "updated_at"}),
	}).Create(&cfg).Error
	if err != nil {
		logger.Log.Error("Failed to save yearly configuration", "year", year, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save yearly configuration!", nil)
	}

	var saved cosmos.YearlyConfiguration
	if err := db.Where("year = ?", year).First(&saved).Error; err != nil {
		logger.Log.Error("Failed to reload yearly configuration", "year", year, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save yearly configuration!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Yearly configuration saved.", saved)
}
