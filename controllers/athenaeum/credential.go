package athenaeumController

import (
	"time"

	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models/athenaeum"

	"github.com/gofiber/fiber/v2"
)

func GetCertificates(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Where("user_id = ?", userID)
	if kind := c.Query("type"); kind != "" {
		db = db.Where("type = ?", kind)
	}

	var certificates []athenaeum.Certificate
	if err := db.Order("issued_at desc").Find(&certificates).Error; err != nil {
		logger.Log.Error("Failed to fetch certificates", "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", certificates)
}

// GetBadges lists every active badge with its rule.
func GetBadges(c *fiber.Ctx) error {
	var badges []athenaeum.Badge
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name asc").Find(&badges).Error; err != nil {
		logger.Log.Error("Failed to fetch badges", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched successfully!", badges)
}

func GetUserBadges(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type EarnedBadge struct {
		athenaeum.Badge
		EarnedAt time.Time `json:"earned_at"`
	}
	var earned []athenaeum.UserBadge
	if err := database.Database.Db.Where("user_id = ?", userID).
		Order("earned_at desc").Find(&earned).Error; err != nil {
		logger.Log.Error("Failed to fetch user badges", "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	ids := make([]string, 0, len(earned))
	for _, e := range earned {
		ids = append(ids, e.BadgeID)
	}
	var badges []athenaeum.Badge
	if len(ids) > 0 {
		if err := database.Database.Db.Where("id IN ?", ids).Find(&badges).Error; err != nil {
			logger.Log.Error("Failed to fetch user badges", "user_id", userID, "error", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
		}
	}
	byID := make(map[string]athenaeum.Badge, len(badges))
	for _, b := range badges {
		byID[b.ID] = b
	}

	result := make([]EarnedBadge, 0, len(earned))
	for _, e := range earned {
		if b, ok := byID[e.BadgeID]; ok {
			result = append(result, EarnedBadge{Badge: b, EarnedAt: e.EarnedAt})
		}
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched successfully!", result)
}
