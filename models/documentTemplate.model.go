package models

import (
	"gorm.io/gorm"
)

// DocumentTemplate is an admin-uploaded file (SOP samples, checklists, forms)
// visible to all users.
type DocumentTemplate struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"default:'GENERAL'"`
	FileName    string `gorm:"not null"` // original upload name
	FilePath    string `gorm:"not null"` // stored path under uploads/templates
	FileSize    int64  `gorm:"default:0"`
	UploadedBy  uint   `gorm:"index"`
}
