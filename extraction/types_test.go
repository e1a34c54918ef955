package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillPlaceholders(t *testing.T) {
	result := OfferLetterResult{
		InstitutionName: "Test University",
		CourseName:      "Computer Science",
	}
	FillPlaceholders(&result)

	assert.Equal(t, "Test University", result.InstitutionName)
	assert.Equal(t, "Computer Science", result.CourseName)
	assert.Equal(t, NotSpecified, result.CricosProviderCode)
	assert.Equal(t, NotSpecified, result.TuitionFeeTotal)
	assert.Equal(t, NotSpecified, result.AdditionalNotes)
	// Slices are left alone, only string fields are backfilled.
	assert.Nil(t, result.ConditionsOfOffer)
}

func TestFillPlaceholdersNonPointer(t *testing.T) {
	// Must not panic on bad input.
	FillPlaceholders(nil)
	FillPlaceholders("not a struct")
	FillPlaceholders(OfferLetterResult{})
}

func TestValidateVisaAnalysisResult(t *testing.T) {
	valid := VisaAnalysisResult{
		Summary:          "Refused on financial grounds.",
		RejectionReasons: []ReasonItem{{Title: "Funds", Description: "Insufficient evidence of funds."}},
		Recommendations:  []ReasonItem{{Title: "Bank statements", Description: "Provide six months of statements."}},
		NextSteps:        []ReasonItem{{Title: "Reapply", Description: "Lodge a new application."}},
	}
	require.NoError(t, Validate(&valid))
}

func TestValidateRejectsEmptyArrays(t *testing.T) {
	missing := VisaAnalysisResult{
		Summary:          "Refused.",
		RejectionReasons: []ReasonItem{},
		Recommendations:  []ReasonItem{{Title: "x"}},
		NextSteps:        []ReasonItem{{Title: "y"}},
	}
	assert.Error(t, Validate(&missing))
}

func TestValidateRejectsMissingSummary(t *testing.T) {
	missing := VisaAnalysisResult{
		RejectionReasons: []ReasonItem{{Title: "x"}},
		Recommendations:  []ReasonItem{{Title: "x"}},
		NextSteps:        []ReasonItem{{Title: "x"}},
	}
	assert.Error(t, Validate(&missing))
}

func TestValidateRejectsUntitledReason(t *testing.T) {
	missing := VisaAnalysisResult{
		Summary:          "Refused.",
		RejectionReasons: []ReasonItem{{Description: "no title"}},
		Recommendations:  []ReasonItem{{Title: "x"}},
		NextSteps:        []ReasonItem{{Title: "x"}},
	}
	assert.Error(t, Validate(&missing))
}
