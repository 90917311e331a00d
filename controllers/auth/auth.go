package authController

import (
	"errors"
	"time"

	"ruha/config"
	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models"
	"ruha/services/progression"
	"ruha/utils"
	"ruha/validators"
	authValidator "ruha/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedLogins = 3
	loginBlockFor   = 1 * time.Minute
	failedLoginTTL  = 15 * time.Minute
)

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*authValidator.SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", reqData.Email).Count(&existing).Error; err != nil {
		logger.Log.Error("Error checking email", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}
	if existing > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		logger.Log.Error("Error hashing password", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	path := reqData.ElementalPath
	if path == "" {
		path = models.PathMixed
	}
	newUser := models.User{
		Name:          reqData.Name,
		Email:         reqData.Email,
		Password:      string(hashedPassword),
		Role:          models.RoleLearner,
		XP:            0,
		Level:         progression.LevelName(0),
		ElementalPath: path,
	}
	if err := db.Create(&newUser).Error; err != nil {
		logger.Log.Error("Error saving user to database", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	utils.SendWelcomeEmail(newUser.Email, newUser.Name)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Error("Error loading user", "error", err)
		}
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	now := time.Now()
	if user.BlockedUntil != nil && user.BlockedUntil.After(now) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your account is temporarily blocked. Try again later.", nil)
	}

	if user.LastFailedLogin != nil && now.Sub(*user.LastFailedLogin) > failedLoginTTL {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		user.FailedLoginAttempts++
		user.LastFailedLogin = &now

		// Block user after repeated failed attempts
		if user.FailedLoginAttempts >= maxFailedLogins {
			unblockTime := now.Add(loginBlockFor)
			user.BlockedUntil = &unblockTime
			user.FailedLoginAttempts = 0
		}
		err := db.Model(&user).Updates(map[string]interface{}{
			"failed_login_attempts": user.FailedLoginAttempts,
			"last_failed_login":     user.LastFailedLogin,
			"blocked_until":         user.BlockedUntil,
		}).Error
		if err != nil {
			logger.Log.Error("Error recording failed login", "user_id", user.ID, "error", err)
		}
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	user.LastLogin = &now
	err = db.Model(&user).Updates(map[string]interface{}{
		"last_login":            now,
		"failed_login_attempts": 0,
		"last_failed_login":     nil,
		"blocked_until":         nil,
	}).Error
	if err != nil {
		logger.Log.Error("Error saving last login time", "user_id", user.ID, "error", err)
	}

	loginTracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: c.IP(),
		Device:    c.Get("User-Agent"),
		Timestamp: now,
	}
	if err := db.Create(&loginTracking).Error; err != nil {
		logger.Log.Error("Error saving login tracking details", "user_id", user.ID, "error", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		logger.Log.Error("Failed to generate token", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"level": progression.LevelFor(user.XP),
		"token": token,
	})
}

func LoginHistoryList(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	page := validators.PageFrom(c)

	db := database.Database.Db
	var history []models.LoginTracking
	var total int64

	query := db.Model(&models.LoginTracking{}).Where("user_id = ? AND is_deleted = ?", userID, false)
	if err := query.Count(&total).Error; err != nil {
		logger.Log.Error("Failed to count login history", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}
	if err := query.Order("timestamp desc").Offset(page.Offset()).Limit(page.Limit).Find(&history).Error; err != nil {
		logger.Log.Error("Failed to fetch login history", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login History List.", fiber.Map{
		"loginTracking": history,
		"pagination": fiber.Map{
			"total": total,
			"page":  page.Page,
			"limit": page.Limit,
		},
	})
}

func ChangePassword(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedChangePassword").(*authValidator.ChangePasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.OldPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Old password is incorrect!", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		logger.Log.Error("Error hashing password", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}
	if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		logger.Log.Error("Error updating password", "user_id", user.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully.", nil)
}
