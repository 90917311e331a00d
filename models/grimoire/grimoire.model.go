package grimoire

import "ruha/models"

// Grimoire is a user-owned journal container.
type Grimoire struct {
	models.Base
	UserID      string `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Element     string `json:"element"`
	IsPrivate   bool   `json:"is_private" gorm:"default:true"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

// Entry is a page written into a grimoire.
type Entry struct {
	models.Base
	GrimoireID string `json:"grimoire_id" gorm:"type:varchar(36);index;not null"`
	UserID     string `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Title      string `json:"title"`
	Content    string `json:"content" gorm:"type:text;not null"`
	Mood       string `json:"mood"`
	MoonPhase  string `json:"moon_phase"`
	XPAwarded  int    `json:"xp_awarded" gorm:"default:0"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}

func (Entry) TableName() string {
	return "grimoire_entries"
}
