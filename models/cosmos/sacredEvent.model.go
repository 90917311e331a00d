package cosmos

import (
	"time"

	"ruha/models"
)

const (
	EventFullMoon = "full_moon"
	EventNewMoon  = "new_moon"
	EventSolstice = "solstice"
	EventEquinox  = "equinox"
	EventEclipse  = "eclipse"
	EventFestival = "festival"
	EventRitual   = "ritual"
)

var EventTypes = []string{EventFullMoon, EventNewMoon, EventSolstice, EventEquinox, EventEclipse, EventFestival, EventRitual}

type SacredEvent struct {
	models.Base
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`
	EventType   string     `json:"event_type" gorm:"index;not null"`
	StartsAt    time.Time  `json:"starts_at" gorm:"index;not null"`
	EndsAt      *time.Time `json:"ends_at"`
	DeityID     *string    `json:"deity_id" gorm:"type:varchar(36)"`
	DisplayDate string     `json:"display_date" gorm:"-"`

	ReminderSent bool `json:"-" gorm:"default:false"`
	IsDeleted    bool `json:"-" gorm:"default:false"`
}

// YearlyConfiguration holds the theme of a calendar year.
type YearlyConfiguration struct {
	models.Base
	Year          int     `json:"year" gorm:"uniqueIndex;not null"`
	Theme         string  `json:"theme"`
	Element       string  `json:"element"`
	RulingDeityID *string `json:"ruling_deity_id" gorm:"type:varchar(36)"`
	Notes         string  `json:"notes" gorm:"type:text"`
}
