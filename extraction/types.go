package extraction

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// NotSpecified is stored for every field the model could not find in the
// document.
const NotSpecified = "Not specified in document"

var validate = validator.New()

// ReasonItem is one titled entry in an analysis array (rejection reason,
// recommendation or next step).
type ReasonItem struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// VisaAnalysisResult is the parsed shape of a rejection letter analysis.
type VisaAnalysisResult struct {
	Summary          string       `json:"summary" validate:"required"`
	RejectionReasons []ReasonItem `json:"rejectionReasons" validate:"required,min=1,dive"`
	Recommendations  []ReasonItem `json:"recommendations" validate:"required,min=1,dive"`
	NextSteps        []ReasonItem `json:"nextSteps" validate:"required,min=1,dive"`
}

// PaymentItem is one row of an offer letter's payment schedule.
type PaymentItem struct {
	DueDate     string `json:"dueDate"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// OfferLetterResult is the parsed shape of an offer letter extraction. Every
// string field the model leaves empty is backfilled with NotSpecified before
// persistence.
type OfferLetterResult struct {
	InstitutionName     string `json:"institutionName"`
	InstitutionAddress  string `json:"institutionAddress"`
	CricosProviderCode  string `json:"cricosProviderCode"`
	InstitutionContact  string `json:"institutionContact"`
	InstitutionEmail    string `json:"institutionEmail"`
	CourseName          string `json:"courseName"`
	CourseLevel         string `json:"courseLevel"`
	CricosCourseCode    string `json:"cricosCourseCode"`
	CourseDuration      string `json:"courseDuration"`
	CommencementDate    string `json:"commencementDate"`
	CompletionDate      string `json:"completionDate"`
	StudyMode           string `json:"studyMode"`
	CampusLocation      string `json:"campusLocation"`
	CreditPoints        string `json:"creditPoints"`
	OrientationDate     string `json:"orientationDate"`
	AcceptanceDeadline  string `json:"acceptanceDeadline"`
	StudentID           string `json:"studentId"`
	StudentName         string `json:"studentName"`
	DateOfBirth         string `json:"dateOfBirth"`
	Nationality         string `json:"nationality"`
	AgentName           string `json:"agentName"`
	TuitionFeeTotal     string `json:"tuitionFeeTotal"`
	TuitionFeePerYear   string `json:"tuitionFeePerYear"`
	InitialDeposit      string `json:"initialDeposit"`
	MaterialFee         string `json:"materialFee"`
	EnrollmentFee       string `json:"enrollmentFee"`
	OshcProvider        string `json:"oshcProvider"`
	OshcCoverType       string `json:"oshcCoverType"`
	OshcCost            string `json:"oshcCost"`
	OshcDuration        string `json:"oshcDuration"`
	ScholarshipDetails  string `json:"scholarshipDetails"`
	EnglishRequirement  string `json:"englishRequirement"`
	AcademicRequirement string `json:"academicRequirement"`
	AttendanceRule      string `json:"attendanceRequirement"`
	ProgressRule        string `json:"academicProgressRequirement"`
	WorkRights          string `json:"workRights"`
	RefundPolicy        string `json:"refundPolicy"`
	DeferralPolicy      string `json:"deferralPolicy"`
	AdditionalNotes     string `json:"additionalNotes"`

	ConditionsOfOffer []string      `json:"conditionsOfOffer"`
	PaymentSchedule   []PaymentItem `json:"paymentSchedule"`
}

// StudyPeriod is one row of a CoE's study period table.
type StudyPeriod struct {
	Period    string `json:"period"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// CoeResult is the parsed shape of a Confirmation of Enrolment extraction.
type CoeResult struct {
	CoeNumber              string `json:"coeNumber"`
	CoeCreatedDate         string `json:"coeCreatedDate"`
	CoeStatus              string `json:"coeStatus"`
	ProviderName           string `json:"providerName"`
	ProviderCricosCode     string `json:"providerCricosCode"`
	CourseName             string `json:"courseName"`
	CourseCricosCode       string `json:"courseCricosCode"`
	CourseLevel            string `json:"courseLevel"`
	CourseStartDate        string `json:"courseStartDate"`
	CourseEndDate          string `json:"courseEndDate"`
	InitialPrepaidTuition  string `json:"initialPrepaidTuition"`
	OtherPrepaidNonTuition string `json:"otherPrepaidNonTuition"`
	TotalTuitionFee        string `json:"totalTuitionFee"`
	OshcProvider           string `json:"oshcProvider"`
	OshcType               string `json:"oshcType"`
	OshcStartDate          string `json:"oshcStartDate"`
	OshcEndDate            string `json:"oshcEndDate"`
	StudentFamilyName      string `json:"studentFamilyName"`
	StudentGivenNames      string `json:"studentGivenNames"`
	StudentDateOfBirth     string `json:"studentDateOfBirth"`
	StudentNationality     string `json:"studentNationality"`
	StudentID              string `json:"studentId"`
	VisaSubclass           string `json:"visaSubclass"`
	EnglishTestType        string `json:"englishTestType"`
	EnglishTestScore       string `json:"englishTestScore"`
	Comments               string `json:"comments"`

	StudyPeriods []StudyPeriod `json:"studyPeriods"`
}

// FillPlaceholders backfills every empty top-level string field of the struct
// pointed to by v with NotSpecified.
func FillPlaceholders(v interface{}) {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Kind() == reflect.String && field.CanSet() && field.String() == "" {
			field.SetString(NotSpecified)
		}
	}
}

// Validate checks a parsed result against its declared constraints before
// anything is persisted.
func Validate(v interface{}) error {
	return validate.Struct(v)
}
