package athenaeum

import (
	"time"

	"ruha/models"

	"gorm.io/datatypes"
)

const (
	CertificateCourse = "course"
	CertificateBadge  = "badge"
	CertificateLevel  = "level"
)

// Badge is a named achievement whose requirements are a JSON rule.
type Badge struct {
	models.Base
	Name         string         `json:"name" gorm:"uniqueIndex;not null"`
	Description  string         `json:"description"`
	Icon         string         `json:"icon"`
	Wing         *string        `json:"wing"` // nil for cross-wing badges
	Requirements datatypes.JSON `json:"requirements"`
	IsDeleted    bool           `json:"-" gorm:"default:false"`
}

// UserBadge is an earned badge. Append-only.
type UserBadge struct {
	models.Base
	UserID   string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_user_badge;not null"`
	BadgeID  string    `json:"badge_id" gorm:"type:varchar(36);uniqueIndex:idx_user_badge;not null"`
	EarnedAt time.Time `json:"earned_at"`
}

// Certificate is an issued credential. Append-only; unique per (user, type, reference).
type Certificate struct {
	models.Base
	UserID            string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_certificate_ref;not null"`
	Type              string    `json:"type" gorm:"uniqueIndex:idx_certificate_ref;not null"`
	ReferenceID       string    `json:"reference_id" gorm:"uniqueIndex:idx_certificate_ref;not null"`
	CourseID          *string   `json:"course_id" gorm:"type:varchar(36)"`
	BadgeID           *string   `json:"badge_id" gorm:"type:varchar(36)"`
	LevelName         string    `json:"level_name,omitempty"`
	Title             string    `json:"title"`
	CertificateNumber string    `json:"certificate_number" gorm:"uniqueIndex"`
	IssuedAt          time.Time `json:"issued_at"`
}
