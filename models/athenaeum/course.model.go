package athenaeum

import (
	"ruha/models"

	"gorm.io/datatypes"
)

const (
	WingSanctum = "sanctum"
	WingOrrery  = "orrery"
)

// Course is a unit of curriculum in one of the two wings.
type Course struct {
	models.Base
	Code          string                      `json:"code" gorm:"uniqueIndex;not null"`
	Title         string                      `json:"title" gorm:"not null"`
	Description   string                      `json:"description" gorm:"type:text"`
	Wing          string                      `json:"wing" gorm:"index;not null"`
	Level         int                         `json:"level" gorm:"default:100"` // 100, 200, 300, 400
	XPReward      int                         `json:"xp_reward" gorm:"default:0"`
	Prerequisites datatypes.JSONSlice[string] `json:"prerequisites"`
	ThumbnailURL  string                      `json:"thumbnail_url"`
	IsPublished   bool                        `json:"is_published" gorm:"default:false"`
	IsDeleted     bool                        `json:"-" gorm:"default:false"`
}

// Lesson is one ordered step of a course.
type Lesson struct {
	models.Base
	CourseID  string `json:"course_id" gorm:"type:varchar(36);uniqueIndex:idx_course_lesson_order;not null"`
	Order     int    `json:"order" gorm:"column:sequence;uniqueIndex:idx_course_lesson_order"` // NULL once deleted, freeing the slot
	Title     string `json:"title" gorm:"not null"`
	Content   string `json:"content" gorm:"type:text"`
	VideoURL  string `json:"video_url"`
	XPReward  int    `json:"xp_reward" gorm:"default:0"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}

// LessonCompletion records that a learner finished a lesson. One row per (user, lesson).
type LessonCompletion struct {
	models.Base
	UserID    string `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_user_lesson;not null"`
	LessonID  string `json:"lesson_id" gorm:"type:varchar(36);uniqueIndex:idx_user_lesson;not null"`
	CourseID  string `json:"course_id" gorm:"type:varchar(36);index;not null"`
	XPAwarded int    `json:"xp_awarded"`
}
