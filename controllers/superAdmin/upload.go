package superAdminController

import (
	"errors"

	"ruha/config"
	"ruha/logger"
	"ruha/middleware"
	"ruha/utils"

	"github.com/gofiber/fiber/v2"
)

// MaxUploadSize caps image uploads at 5 MB. The app body limit must stay above it.
const MaxUploadSize = 5 << 20

// UploadImage stores an image for course thumbnails or deity portraits and returns
// its public url.
func UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"file": "file is required!"})
	}
	if file.Size > MaxUploadSize {
		return middleware.ValidationErrorResponse(c, map[string]string{"file": "file must be 5 MB or smaller!"})
	}

	name, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if errors.Is(err, utils.ErrFileType) {
		return middleware.ValidationErrorResponse(c, map[string]string{"file": "Only png, jpg, webp or gif images are allowed!"})
	}
	if err != nil {
		logger.Log.Error("Failed to store upload", "filename", file.Filename, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded.", fiber.Map{
		"url": utils.GetFileURL(name),
	})
}
