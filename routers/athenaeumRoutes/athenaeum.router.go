package athenaeumRoutes

import (
	athenaeumController "ruha/controllers/athenaeum"
	"ruha/middleware"
	"ruha/validators"
	athenaeumValidator "ruha/validators/athenaeum"

	"github.com/gofiber/fiber/v2"
)

// SetupAthenaeumRoutes mounts the learner side of the athenaeum.
func SetupAthenaeumRoutes(api fiber.Router) {
	courseGroup := api.Group("/courses", middleware.JWTMiddleware)
	courseGroup.Get("/", athenaeumValidator.CourseList(), athenaeumController.GetAllCourses)
	courseGroup.Get("/:id", validators.ParamID("id"), athenaeumController.GetCourse)

	enrollmentGroup := api.Group("/enrollments", middleware.JWTMiddleware)
	enrollmentGroup.Post("/", athenaeumValidator.EnrollCourse(), athenaeumController.EnrollInCourse)
	enrollmentGroup.Get("/", athenaeumValidator.EnrollmentList(), athenaeumController.GetEnrollments)
	enrollmentGroup.Post("/:courseId/complete", validators.ParamID("courseId"), athenaeumController.CompleteCourse)
	enrollmentGroup.Post("/:courseId/drop", validators.ParamID("courseId"), athenaeumController.DropCourse)

	api.Post("/lessons/:id/complete", middleware.JWTMiddleware, validators.ParamID("id"), athenaeumController.CompleteLesson)

	api.Get("/certificates", middleware.JWTMiddleware, athenaeumController.GetCertificates)
	api.Get("/badges", middleware.JWTMiddleware, athenaeumController.GetBadges)

	journalGroup := api.Group("/journal-entries", middleware.JWTMiddleware)
	journalGroup.Post("/", athenaeumValidator.JournalEntry(), athenaeumController.CreateJournalEntry)
	journalGroup.Get("/", validators.Paginate(), athenaeumController.GetJournalEntries)
}
