package superAdminController

import (
	"errors"

	"ruha/config"
	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models"
	"ruha/services/progression"
	"ruha/validators"
	superAdminValidator "ruha/validators/superAdmin"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func UserList(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedUserList").(*superAdminValidator.UserListRequest)
	page := validators.PageFrom(c)

	query := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)
	if reqData != nil && reqData.Role != "" {
		query = query.Where("role = ?", reqData.Role)
	}
	if reqData != nil && reqData.Search != "" {
		like := "%" + reqData.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var users []models.User
	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Log.Error("Failed to count users", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}
	if err := query.Order("created_at desc").Offset(page.Offset()).Limit(page.Limit).Find(&users).Error; err != nil {
		logger.Log.Error("Failed to fetch users", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User List.", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page.Page,
			"limit": page.Limit,
		},
	})
}

// RegisterStaff creates an instructor or admin account without the signup flow.
func RegisterStaff(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedStaff").(*superAdminValidator.RegisterStaffRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	db := database.Database.Db

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

	newUser := models.User{
		Name:          reqData.Name,
		Email:         reqData.Email,
		Password:      string(hashedPassword),
		Role:          reqData.Role,
		Level:         progression.LevelName(0),
		ElementalPath: models.PathMixed,
	}
	if err := db.Create(&newUser).Error; err != nil {
		logger.Log.Error("Error saving staff account", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register account!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Account registered successfully.", newUser)
}

// UpdateUserRole changes the role of another account. Admins cannot demote themselves.
func UpdateUserRole(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRole").(*superAdminValidator.UpdateRoleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	callerID, _ := middleware.UserID(c)
	id := c.Locals("id").(string)
	if id == callerID && reqData.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot remove your own admin role!", nil)
	}

	db := database.Database.Db
	var user models.User
	err := db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if err != nil {
		logger.Log.Error("Failed to load user", "user_id", id, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	if err := db.Model(&user).Update("role", reqData.Role).Error; err != nil {
		logger.Log.Error("Failed to update role", "user_id", id, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}
	user.Role = reqData.Role
	logger.Log.Info("User role changed", "user_id", id, "role", reqData.Role, "by", callerID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated.", user)
}
