package models

import (
	"time"

	"gorm.io/gorm"
)

type LoginTracking struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	IPAddress string `gorm:"default:''"`
	Device    string `gorm:"default:''"`
	Timestamp time.Time
}
