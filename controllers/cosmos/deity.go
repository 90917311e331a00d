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
)

func GetDeities(c *fiber.Ctx) error {
	db := database.Database.Db.Where("is_deleted = ?", false)
	if pantheon := c.Query("pantheon"); pantheon != "" {
		db = db.Where("pantheon = ?", pantheon)
	}

	var deities []cosmos.Deity
	if err := db.Order("name asc").Find(&deities).Error; err != nil {
		logger.Log.Error("Failed to fetch deities", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch deities!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deities fetched successfully!", deities)
}

func findDeity(c *fiber.Ctx) (*cosmos.Deity, error) {
	var deity cosmos.Deity
	id := c.Locals("id").(string)
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&deity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Deity not found!", nil)
	}
	if err != nil {
		logger.Log.Error("Failed to fetch deity", "deity_id", id, "error", err)
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch deity!", nil)
	}
	return &deity, nil
}

func GetDeity(c *fiber.Ctx) error {
	deity, err := findDeity(c)
	if deity == nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deity fetched successfully!", deity)
}

func nameTaken(id, name string) (bool, error) {
	var count int64
	db := database.Database.Db.Model(&cosmos.Deity{}).Where("name = ?", name)
	if id != "" {
		db = db.Where("id <> ?", id)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

func AdminCreateDeity(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedDeity").(*cosmosValidator.DeityRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	taken, err := nameTaken("", reqData.Name)
	if err != nil {
		logger.Log.Error("Failed to check deity name", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create deity!", nil)
	}
	if taken {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Deity already exists!", nil)
	}

	deity := cosmos.Deity{
		Name:        reqData.Name,
		Pantheon:    reqData.Pantheon,
		Domain:      reqData.Domain,
		Element:     reqData.Element,
		Description: reqData.Description,
		ImageURL:    reqData.ImageURL,
	}
	if err := database.Database.Db.Create(&deity).Error; err != nil {
		logger.Log.Error("Failed to create deity", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create deity!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Deity created successfully!", deity)
}

func AdminUpdateDeity(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedDeity").(*cosmosValidator.DeityRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	deity, err := findDeity(c)
	if deity == nil {
		return err
	}
	taken, err := nameTaken(deity.ID, reqData.Name)
	if err != nil {
		logger.Log.Error("Failed to check deity name", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update deity!", nil)
	}
	if taken {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Deity already exists!", nil)
	}

	deity.Name = reqData.Name
	deity.Pantheon = reqData.Pantheon
	deity.Domain = reqData.Domain
	deity.Element = reqData.Element
	deity.Description = reqData.Description
	deity.ImageURL = reqData.ImageURL
	if err := database.Database.Db.Save(deity).Error; err != nil {
		logger.Log.Error("Failed to update deity", "deity_id", deity.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update deity!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deity updated successfully!", deity)
}

func AdminDeleteDeity(c *fiber.Ctx) error {
	deity, err := findDeity(c)
	if deity == nil {
		return err
	}
	if err := database.Database.Db.Model(deity).Update("is_deleted", true).Error; err != nil {
		logger.Log.Error("Failed to delete deity", "deity_id", deity.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete deity!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deity deleted successfully!", nil)
}
