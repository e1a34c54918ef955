package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OfferLetterInfo is a wide flat row holding one offer letter's extracted
// fields. Re-uploading a document creates a new row; rows are not updated in
// place. Fields the model could not find hold "Not specified in document".
type OfferLetterInfo struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null"`
	FileName string `gorm:"not null"`
	Provider string `gorm:"default:''"`

	InstitutionName     string `gorm:"default:''"`
	InstitutionAddress  string `gorm:"default:''"`
	CricosProviderCode  string `gorm:"default:''"`
	InstitutionContact  string `gorm:"default:''"`
	InstitutionEmail    string `gorm:"default:''"`
	CourseName          string `gorm:"default:''"`
	CourseLevel         string `gorm:"default:''"`
	CricosCourseCode    string `gorm:"default:''"`
	CourseDuration      string `gorm:"default:''"`
	CommencementDate    string `gorm:"default:''"`
	CompletionDate      string `gorm:"default:''"`
	StudyMode           string `gorm:"default:''"`
	CampusLocation      string `gorm:"default:''"`
	CreditPoints        string `gorm:"default:''"`
	OrientationDate     string `gorm:"default:''"`
	AcceptanceDeadline  string `gorm:"default:''"`
	StudentID           string `gorm:"default:''"`
	StudentName         string `gorm:"default:''"`
	DateOfBirth         string `gorm:"default:''"`
	Nationality         string `gorm:"default:''"`
	AgentName           string `gorm:"default:''"`
	TuitionFeeTotal     string `gorm:"default:''"`
	TuitionFeePerYear   string `gorm:"default:''"`
	InitialDeposit      string `gorm:"default:''"`
	MaterialFee         string `gorm:"default:''"`
	EnrollmentFee       string `gorm:"default:''"`
	OshcProvider        string `gorm:"default:''"`
	OshcCoverType       string `gorm:"default:''"`
	OshcCost            string `gorm:"default:''"`
	OshcDuration        string `gorm:"default:''"`
	ScholarshipDetails  string `gorm:"default:''"`
	EnglishRequirement  string `gorm:"default:''"`
	AcademicRequirement string `gorm:"default:''"`
	AttendanceRule      string `gorm:"default:''"`
	ProgressRule        string `gorm:"default:''"`
	WorkRights          string `gorm:"default:''"`
	RefundPolicy        string `gorm:"type:text"`
	DeferralPolicy      string `gorm:"type:text"`
	AdditionalNotes     string `gorm:"type:text"`

	ConditionsOfOffer datatypes.JSON // array of condition strings
	PaymentSchedule   datatypes.JSON // array of {dueDate, amount, description}
}
