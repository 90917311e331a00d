package athenaeum

import (
	"time"

	"ruha/models"
)

const (
	EnrollmentEnrolled  = "enrolled"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

// Enrollment tracks a learner's progress in one course.
type Enrollment struct {
	models.Base
	UserID      string     `json:"user_id" gorm:"type:varchar(36);index:idx_enrollment_user_course;not null"`
	CourseID    string     `json:"course_id" gorm:"type:varchar(36);index:idx_enrollment_user_course;not null"`
	Status      string     `json:"status" gorm:"default:'enrolled';not null"`
	Progress    int        `json:"progress" gorm:"default:0"` // 0-100
	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	DroppedAt   *time.Time `json:"dropped_at"`
}

// JournalEntry is a reflection written by a learner, optionally tied to a lesson.
type JournalEntry struct {
	models.Base
	UserID    string  `json:"user_id" gorm:"type:varchar(36);index;not null"`
	CourseID  *string `json:"course_id" gorm:"type:varchar(36);index"`
	LessonID  *string `json:"lesson_id" gorm:"type:varchar(36)"`
	Content   string  `json:"content" gorm:"type:text;not null"`
	XPAwarded int     `json:"xp_awarded" gorm:"default:10"`
}
