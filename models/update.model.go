package models

import (
	"time"

	"gorm.io/gorm"
)

// Update is an admin-published notice shown to all users.
type Update struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Content     string `gorm:"type:text;not null"`
	Category    string `gorm:"default:'NEWS'"` // NEWS, POLICY, SCHOLARSHIP, DEADLINE
	IsPublished bool   `gorm:"default:false"`
	PublishedAt *time.Time
	CreatedBy   uint `gorm:"index"`
}
