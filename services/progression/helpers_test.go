package progression

import (
	"fmt"
	"strings"
	"testing"

	"ruha/database"
	"ruha/models"
	"ruha/models/athenaeum"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenSqlite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func createUser(t *testing.T, db *gorm.DB, xp int) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Seeker",
		Email:    fmt.Sprintf("seeker-%s@example.com", uuid.NewString()[:8]),
		Password: "x",
		Role:     models.RoleLearner,
		XP:       xp,
		Level:    LevelName(xp),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

var courseSeq int

func createCourse(t *testing.T, db *gorm.DB, wing string, xpReward, lessons, lessonXP int) (*athenaeum.Course, []athenaeum.Lesson) {
	t.Helper()
	courseSeq++
	course := &athenaeum.Course{
		Code:        fmt.Sprintf("RUHA-%03d", courseSeq),
		Title:       fmt.Sprintf("Mysteries %d", courseSeq),
		Wing:        wing,
		Level:       100,
		XPReward:    xpReward,
		IsPublished: true,
	}
	require.NoError(t, db.Create(course).Error)

	var created []athenaeum.Lesson
	for i := 1; i <= lessons; i++ {
		created = append(created, addLesson(t, db, course, i, lessonXP))
	}
	return course, created
}

func addLesson(t *testing.T, db *gorm.DB, course *athenaeum.Course, order, xp int) athenaeum.Lesson {
	t.Helper()
	lesson := athenaeum.Lesson{
		CourseID: course.ID,
		Order:    order,
		Title:    fmt.Sprintf("Lesson %d", order),
		XPReward: xp,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func createBadge(t *testing.T, db *gorm.DB, name, rule string) *athenaeum.Badge {
	t.Helper()
	badge := &athenaeum.Badge{Name: name, Requirements: datatypes.JSON(rule)}
	require.NoError(t, db.Create(badge).Error)
	return badge
}

func reloadUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", id).Error)
	return user
}

func countCertificates(t *testing.T, db *gorm.DB, userID, kind string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&athenaeum.Certificate{}).Where("user_id = ? AND type = ?", userID, kind).Count(&n).Error)
	return n
}
