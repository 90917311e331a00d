package userController

import (
	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models"
	"ruha/services/progression"
	userValidator "ruha/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func loadUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	return &user, nil
}

// GetProfile returns the user with the level derived from xp.
func GetProfile(c *fiber.Ctx) error {
	user, err := loadUser(c)
	if user == nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched.", fiber.Map{
		"user":  user,
		"level": progression.LevelFor(user.XP),
	})
}

func UpdateProfile(c *fiber.Ctx) error {
	user, err := loadUser(c)
	if user == nil {
		return err
	}
	reqData, ok := c.Locals("validatedProfile").(*userValidator.UpdateProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.ElementalPath != nil {
		updates["elemental_path"] = *reqData.ElementalPath
	}
	if reqData.EventReminders != nil {
		updates["event_reminders"] = *reqData.EventReminders
	}
	if len(updates) > 0 {
		if err := database.Database.Db.Model(user).Updates(updates).Error; err != nil {
			logger.Log.Error("Failed to update profile", "user_id", user.ID, "error", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully.", fiber.Map{
		"user":  user,
		"level": progression.LevelFor(user.XP),
	})
}
