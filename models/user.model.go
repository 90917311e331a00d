package models

import "time"

const (
	RoleLearner    = "learner"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Elemental paths a learner may walk.
const (
	PathEarth  = "earth"
	PathWater  = "water"
	PathAir    = "air"
	PathFire   = "fire"
	PathAether = "aether"
	PathMixed  = "mixed"
)

var ElementalPaths = []string{PathEarth, PathWater, PathAir, PathFire, PathAether, PathMixed}

type User struct {
	Base
	Name           string     `json:"name" gorm:"default:''"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null"`
	Password       string     `json:"-" gorm:"not null"`
	Role           string     `json:"role" gorm:"default:'learner'"`
	XP             int        `json:"xp" gorm:"default:0;not null"`
	Level          string     `json:"level" gorm:"default:'Prophyte'"` // cache of LevelFor(XP), rewritten on every XP change
	ElementalPath  string     `json:"elemental_path" gorm:"default:'mixed'"`
	EventReminders bool       `json:"event_reminders" gorm:"default:false"`
	LastLogin      *time.Time `json:"last_login"`

	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"-"`
	BlockedUntil        *time.Time `json:"-"`

	IsDeleted bool `json:"-" gorm:"default:false"`
}
