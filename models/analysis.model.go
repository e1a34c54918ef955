package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Analysis is one visa-rejection analysis produced by the extraction pipeline.
// Rows are created once per successful model call and never mutated afterwards
// except for the visibility flag.
type Analysis struct {
	gorm.Model
	UserID           uint   `gorm:"index;not null"`
	FileName         string `gorm:"not null"`
	ExtractedText    string `gorm:"type:text"`
	Summary          string `gorm:"type:text"`
	RejectionReasons datatypes.JSON
	Recommendations  datatypes.JSON
	NextSteps        datatypes.JSON
	Provider         string `gorm:"default:''"` // which LLM vendor produced this analysis
	IsPublic         bool   `gorm:"default:false"`
}
