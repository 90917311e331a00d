package cosmos

import "ruha/models"

type Deity struct {
	models.Base
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Pantheon    string `json:"pantheon"`
	Domain      string `json:"domain"`
	Element     string `json:"element"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"image_url"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
