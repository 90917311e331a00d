package adminRoutes

import (
	athenaeumController "ruha/controllers/athenaeum"
	cosmosController "ruha/controllers/cosmos"
	superAdminController "ruha/controllers/superAdmin"
	"ruha/middleware"
	"ruha/models"
	"ruha/validators"
	athenaeumValidator "ruha/validators/athenaeum"
	cosmosValidator "ruha/validators/cosmos"
	superAdminValidator "ruha/validators/superAdmin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes mounts catalogue, credential and calendar management.
func SetupAdminRoutes(api fiber.Router) {
	adminGroup := api.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	// Courses
	courseGroup := adminGroup.Group("/courses")
	courseGroup.Get("/", validators.Paginate(), athenaeumController.AdminGetCourses)
	courseGroup.Post("/", athenaeumValidator.CreateCourse(), athenaeumController.AdminCreateCourse)
	courseGroup.Put("/:id", validators.ParamID("id"), athenaeumValidator.UpdateCourse(), athenaeumController.AdminUpdateCourse)
	courseGroup.Delete("/:id", validators.ParamID("id"), athenaeumController.AdminDeleteCourse)
	courseGroup.Post("/:id/publish", validators.ParamID("id"), athenaeumValidator.PublishCourse(), athenaeumController.AdminPublishCourse)

	// Lessons
	courseGroup.Get("/:id/lessons", validators.ParamID("id"), athenaeumController.AdminGetLessons)
	courseGroup.Post("/:id/lessons", validators.ParamID("id"), athenaeumValidator.CreateLesson(), athenaeumController.AdminCreateLesson)
	adminGroup.Put("/lessons/:id", validators.ParamID("id"), athenaeumValidator.UpdateLesson(), athenaeumController.AdminUpdateLesson)
	adminGroup.Delete("/lessons/:id", validators.ParamID("id"), athenaeumController.AdminDeleteLesson)

	// Enrollment tracking
	courseGroup.Get("/:id/enrollments", validators.ParamID("id"), validators.Paginate(), athenaeumController.AdminGetCourseEnrollments)

	// Badges
	badgeGroup := adminGroup.Group("/badges")
	badgeGroup.Get("/", athenaeumController.GetBadges)
	badgeGroup.Post("/", athenaeumValidator.Badge(), athenaeumController.AdminCreateBadge)
	badgeGroup.Put("/:id", validators.ParamID("id"), athenaeumValidator.Badge(), athenaeumController.AdminUpdateBadge)
	badgeGroup.Delete("/:id", validators.ParamID("id"), athenaeumController.AdminDeleteBadge)

	// Cosmos
	deityGroup := adminGroup.Group("/deities")
	deityGroup.Post("/", cosmosValidator.Deity(), cosmosController.AdminCreateDeity)
	deityGroup.Put("/:id", validators.ParamID("id"), cosmosValidator.Deity(), cosmosController.AdminUpdateDeity)
	deityGroup.Delete("/:id", validators.ParamID("id"), cosmosController.AdminDeleteDeity)

	eventGroup := adminGroup.Group("/sacred-events")
	eventGroup.Post("/", cosmosValidator.SacredEvent(), cosmosController.AdminCreateSacredEvent)
	eventGroup.Put("/:id", validators.ParamID("id"), cosmosValidator.SacredEvent(), cosmosController.AdminUpdateSacredEvent)
	eventGroup.Delete("/:id", validators.ParamID("id"), cosmosController.AdminDeleteSacredEvent)

	adminGroup.Put("/yearly-config/:year", cosmosValidator.Year(), cosmosValidator.YearlyConfig(), cosmosController.AdminUpsertYearlyConfig)

	// Accounts
	userGroup := adminGroup.Group("/users")
	userGroup.Get("/", superAdminValidator.List(), superAdminController.UserList)
	userGroup.Post("/", superAdminValidator.RegisterStaff(), superAdminController.RegisterStaff)
	userGroup.Put("/:id/role", validators.ParamID("id"), superAdminValidator.UpdateRole(), superAdminController.UpdateUserRole)

	adminGroup.Post("/uploads", superAdminController.UploadImage)

	// Dashboard
	adminGroup.Get("/dashboard/stats", athenaeumController.AdminDashboardStats)
}
