package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CoeInformation holds one Confirmation of Enrolment's extracted fields.
// Same lifecycle as OfferLetterInfo: one row per upload, never updated.
type CoeInformation struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null"`
	FileName string `gorm:"not null"`
	Provider string `gorm:"default:''"`

	CoeNumber              string `gorm:"default:''"`
	CoeCreatedDate         string `gorm:"default:''"`
	CoeStatus              string `gorm:"default:''"`
	ProviderName           string `gorm:"default:''"`
	ProviderCricosCode     string `gorm:"default:''"`
	CourseName             string `gorm:"default:''"`
	CourseCricosCode       string `gorm:"default:''"`
	CourseLevel            string `gorm:"default:''"`
	CourseStartDate        string `gorm:"default:''"`
	CourseEndDate          string `gorm:"default:''"`
	InitialPrepaidTuition  string `gorm:"default:''"`
	OtherPrepaidNonTuition string `gorm:"default:''"`
	TotalTuitionFee        string `gorm:"default:''"`
	OshcProvider           string `gorm:"default:''"`
	OshcType               string `gorm:"default:''"`
	OshcStartDate          string `gorm:"default:''"`
	OshcEndDate            string `gorm:"default:''"`
	StudentFamilyName      string `gorm:"default:''"`
	StudentGivenNames      string `gorm:"default:''"`
	StudentDateOfBirth     string `gorm:"default:''"`
	StudentNationality     string `gorm:"default:''"`
	StudentID              string `gorm:"default:''"`
	VisaSubclass           string `gorm:"default:''"`
	EnglishTestType        string `gorm:"default:''"`
	EnglishTestScore       string `gorm:"default:''"`
	Comments               string `gorm:"type:text"`

	StudyPeriods datatypes.JSON // array of {period, startDate, endDate}
}
