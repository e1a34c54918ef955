package llm

import (
	"strings"
	"unicode/utf8"
)

// Prompt templates are fixed string literals per document type. The user
// prompt embeds the raw extracted text, capped so very large documents cannot
// blow past the model's context window.

const promptByteLimit = 128 * 1024

const SystemPrompt = `You are an expert Australian student-visa consultant. You read study-abroad documents and extract structured information.
Respond with a single JSON object only. No markdown fences, no commentary before or after the JSON.
For any field that is not present in the document, use the exact string "Not specified in document".`

const visaRejectionSchema = `
The document is a visa rejection / refusal letter. Produce JSON with exactly these keys:
{
  "summary": "two or three sentence plain-English summary of why the visa was refused",
  "rejectionReasons": [{"title": "short reason heading", "description": "detailed explanation quoting the letter where possible"}],
  "recommendations": [{"title": "short heading", "description": "what the applicant should change before re-applying"}],
  "nextSteps": [{"title": "short heading", "description": "concrete action in order"}]
}
Each array must contain at least one entry.`

const offerLetterSchema = `
The document is a university offer letter. Produce JSON with exactly these keys, all values strings unless noted:
{
  "institutionName": "", "institutionAddress": "", "cricosProviderCode": "", "institutionContact": "", "institutionEmail": "",
  "courseName": "", "courseLevel": "", "cricosCourseCode": "", "courseDuration": "", "commencementDate": "", "completionDate": "",
  "studyMode": "", "campusLocation": "", "creditPoints": "", "orientationDate": "", "acceptanceDeadline": "",
  "studentId": "", "studentName": "", "dateOfBirth": "", "nationality": "", "agentName": "",
  "tuitionFeeTotal": "", "tuitionFeePerYear": "", "initialDeposit": "", "materialFee": "", "enrollmentFee": "",
  "oshcProvider": "", "oshcCoverType": "", "oshcCost": "", "oshcDuration": "",
  "scholarshipDetails": "", "englishRequirement": "", "academicRequirement": "",
  "attendanceRequirement": "", "academicProgressRequirement": "", "workRights": "",
  "refundPolicy": "", "deferralPolicy": "", "additionalNotes": "",
  "conditionsOfOffer": ["each condition as its own string"],
  "paymentSchedule": [{"dueDate": "", "amount": "", "description": ""}]
}`

const coeSchema = `
The document is an Australian Confirmation of Enrolment (CoE). Produce JSON with exactly these keys, all values strings unless noted:
{
  "coeNumber": "", "coeCreatedDate": "", "coeStatus": "",
  "providerName": "", "providerCricosCode": "",
  "courseName": "", "courseCricosCode": "", "courseLevel": "", "courseStartDate": "", "courseEndDate": "",
  "initialPrepaidTuition": "", "otherPrepaidNonTuition": "", "totalTuitionFee": "",
  "oshcProvider": "", "oshcType": "", "oshcStartDate": "", "oshcEndDate": "",
  "studentFamilyName": "", "studentGivenNames": "", "studentDateOfBirth": "", "studentNationality": "", "studentId": "",
  "visaSubclass": "", "englishTestType": "", "englishTestScore": "", "comments": "",
  "studyPeriods": [{"period": "", "startDate": "", "endDate": ""}]
}`

// BuildVisaRejectionPrompt returns the system and user prompt for a rejection
// letter analysis.
func BuildVisaRejectionPrompt(documentText string) (string, string) {
	return SystemPrompt + visaRejectionSchema, buildUserPrompt(documentText)
}

// BuildOfferLetterPrompt returns the system and user prompt for an offer
// letter extraction.
func BuildOfferLetterPrompt(documentText string) (string, string) {
	return SystemPrompt + offerLetterSchema, buildUserPrompt(documentText)
}

// BuildCoePrompt returns the system and user prompt for a CoE extraction.
func BuildCoePrompt(documentText string) (string, string) {
	return SystemPrompt + coeSchema, buildUserPrompt(documentText)
}

func buildUserPrompt(documentText string) string {
	if len(documentText) > promptByteLimit {
		// Back the cut off to a rune boundary so the last character is not
		// mangled mid-sequence.
		cut := promptByteLimit
		for cut > 0 && !utf8.RuneStart(documentText[cut]) {
			cut--
		}
		documentText = documentText[:cut] + "\n\n[...truncated...]"
	}

	builder := strings.Builder{}
	builder.WriteString("Extract the requested fields from the following document text and output JSON only.\n\n")
	builder.WriteString("Document text:\n")
	builder.WriteString(documentText)

	return builder.String()
}
