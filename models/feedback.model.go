package models

import (
	"gorm.io/gorm"
)

// Feedback is write-once per (user, analysis) pair; the composite unique index
// is what actually enforces it.
type Feedback struct {
	gorm.Model
	UserID     uint   `gorm:"not null;uniqueIndex:idx_feedback_user_analysis"`
	AnalysisID uint   `gorm:"not null;uniqueIndex:idx_feedback_user_analysis"`
	Rating     int    `gorm:"not null"` // 1-5
	Comment    string `gorm:"type:text"`
}
