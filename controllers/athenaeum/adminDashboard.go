package athenaeumController

import (
	"time"

	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models"
	"ruha/models/athenaeum"
	"ruha/models/cosmos"
	"ruha/models/grimoire"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

type countRow struct {
	Label string `json:"label"`
	Total int64  `json:"total"`
}

func groupCounts(model interface{}, column string) (map[string]int64, error) {
	var rows []countRow
	err := database.Database.Db.Model(model).
		Select(column + " AS label, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Label] = row.Total
	}
	return counts, nil
}

// AdminDashboardStats summarises the platform for the admin home screen.
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db
	fail := func(err error) error {
		logger.Log.Error("Failed to build dashboard stats", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard stats!", nil)
	}

	var users, courses, published, journals, pages, upcoming int64
	if err := db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&users).Error; err != nil {
		return fail(err)
	}
	if err := db.Model(&athenaeum.Course{}).Where("is_deleted = ?", false).Count(&courses).Error; err != nil {
		return fail(err)
	}
	if err := db.Model(&athenaeum.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&published).Error; err != nil {
		return fail(err)
	}
	if err := db.Model(&athenaeum.JournalEntry{}).Count(&journals).Error; err != nil {
		return fail(err)
	}
	if err := db.Model(&grimoire.Entry{}).Where("is_deleted = ?", false).Count(&pages).Error; err != nil {
		return fail(err)
	}

	from := now.With(time.Now().UTC()).BeginningOfDay()
	to := from.AddDate(0, 0, 30)
	if err := db.Model(&cosmos.SacredEvent{}).
		Where("is_deleted = ? AND starts_at BETWEEN ? AND ?", false, from, to).
		Count(&upcoming).Error; err != nil {
		return fail(err)
	}

	enrollments, err := groupCounts(&athenaeum.Enrollment{}, "status")
	if err != nil {
		return fail(err)
	}
	certificates, err := groupCounts(&athenaeum.Certificate{}, "type")
	if err != nil {
		return fail(err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"users":             users,
		"courses":           courses,
		"published_courses": published,
		"enrollments":       enrollments,
		"certificates":      certificates,
		"journal_entries":   journals,
		"grimoire_entries":  pages,
		"upcoming_events":   upcoming,
		"generated_at":      time.Now().UTC(),
	})
}
