package models

import (
	"time"

	"gorm.io/gorm"
)

// WatchlistItem is a scholarship a user is tracking.
type WatchlistItem struct {
	gorm.Model
	UserID          uint   `gorm:"index;not null"`
	ScholarshipName string `gorm:"not null"`
	ProviderName    string `gorm:"default:''"`
	Country         string `gorm:"default:''"`
	Amount          string `gorm:"default:''"`
	Deadline        *time.Time
	Status          string `gorm:"default:'PLANNING'"` // PLANNING, APPLIED, SHORTLISTED, AWARDED, REJECTED
	Notes           string `gorm:"type:text"`
	DeadlineWarned  bool   `gorm:"default:false"`
}
