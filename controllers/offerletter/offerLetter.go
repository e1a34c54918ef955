package offerLetterController

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"visadesk/database"
	"visadesk/extraction"
	"visadesk/llm"
	"visadesk/middleware"
	"visadesk/models"
	"visadesk/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var extractText = utils.ExtractText

var errQuotaExhausted = errors.New("analysis quota exhausted")

// Extract runs the extraction pipeline for an offer letter and persists one
// wide row. Re-uploading creates a new row; rows are never updated in place.
func Extract(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Blocked() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your account has been blocked. Contact support.", nil)
	}

	if user.AnalysisCount >= user.MaxAnalyses {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Analysis quota exhausted. Contact support to increase your limit.", nil)
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No document uploaded!", nil)
	}

	if err := utils.ValidateUpload(fileHeader.Filename, fileHeader.Size); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Could not read uploaded file!", nil)
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Could not read uploaded file!", nil)
	}

	text, err := extractText(fileHeader.Filename, data)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	}

	systemPrompt, userPrompt := llm.BuildOfferLetterPrompt(text)
	raw, err := llm.Generate(c.Context(), systemPrompt, userPrompt)
	if err != nil {
		log.Printf("LLM call failed for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "The analysis service is unavailable. Please try again later.", nil)
	}

	var result extraction.OfferLetterResult
	if err := llm.ExtractJSON(raw, &result); err != nil {
		log.Printf("Unparseable model output for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "The document could not be analyzed. Please try again.", nil)
	}
	extraction.FillPlaceholders(&result)

	conditions, _ := json.Marshal(result.ConditionsOfOffer)
	schedule, _ := json.Marshal(result.PaymentSchedule)

	row := models.OfferLetterInfo{
		UserID:   userId,
		FileName: fileHeader.Filename,
		Provider: llm.Active.Name(),

		InstitutionName:     result.InstitutionName,
		InstitutionAddress:  result.InstitutionAddress,
		CricosProviderCode:  result.CricosProviderCode,
		InstitutionContact:  result.InstitutionContact,
		InstitutionEmail:    result.InstitutionEmail,
		CourseName:          result.CourseName,
		CourseLevel:         result.CourseLevel,
		CricosCourseCode:    result.CricosCourseCode,
		CourseDuration:      result.CourseDuration,
		CommencementDate:    result.CommencementDate,
		CompletionDate:      result.CompletionDate,
		StudyMode:           result.StudyMode,
		CampusLocation:      result.CampusLocation,
		CreditPoints:        result.CreditPoints,
		OrientationDate:     result.OrientationDate,
		AcceptanceDeadline:  result.AcceptanceDeadline,
		StudentID:           result.StudentID,
		StudentName:         result.StudentName,
		DateOfBirth:         result.DateOfBirth,
		Nationality:         result.Nationality,
		AgentName:           result.AgentName,
		TuitionFeeTotal:     result.TuitionFeeTotal,
		TuitionFeePerYear:   result.TuitionFeePerYear,
		InitialDeposit:      result.InitialDeposit,
		MaterialFee:         result.MaterialFee,
		EnrollmentFee:       result.EnrollmentFee,
		OshcProvider:        result.OshcProvider,
		OshcCoverType:       result.OshcCoverType,
		OshcCost:            result.OshcCost,
		OshcDuration:        result.OshcDuration,
		ScholarshipDetails:  result.ScholarshipDetails,
		EnglishRequirement:  result.EnglishRequirement,
		AcademicRequirement: result.AcademicRequirement,
		AttendanceRule:      result.AttendanceRule,
		ProgressRule:        result.ProgressRule,
		WorkRights:          result.WorkRights,
		RefundPolicy:        result.RefundPolicy,
		DeferralPolicy:      result.DeferralPolicy,
		AdditionalNotes:     result.AdditionalNotes,

		ConditionsOfOffer: datatypes.JSON(conditions),
		PaymentSchedule:   datatypes.JSON(schedule),
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND analysis_count < max_analyses", userId).
			UpdateColumn("analysis_count", gorm.Expr("analysis_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errQuotaExhausted
		}

		return tx.Create(&row).Error
	})
	if err != nil {
		if errors.Is(err, errQuotaExhausted) {
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Analysis quota exhausted. Contact support to increase your limit.", nil)
		}
		log.Printf("Error saving offer letter info for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save offer letter information!", nil)
	}

	utils.SendAnalysisReadyEmail(user.Email, user.Name, row.FileName)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Offer letter analyzed successfully.", row)
}

func List(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var rows []models.OfferLetterInfo
	if err := database.Database.Db.Where("user_id = ?", userId).Order("created_at DESC").Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch offer letter information!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Offer letter information fetched successfully.", rows)
}

func Detail(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id!", nil)
	}

	var row models.OfferLetterInfo
	if err := database.Database.Db.Where("id = ? AND user_id = ?", id, userId).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Offer letter information not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch offer letter information!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Offer letter information fetched successfully.", row)
}
