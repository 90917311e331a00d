package models

import "time"

type LoginTracking struct {
	Base
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	IPAddress string    `json:"ip_address"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
	IsDeleted bool      `json:"-" gorm:"default:false"`
}
