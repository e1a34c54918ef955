package coeController

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

// Extract runs the extraction pipeline for a Confirmation of Enrolment.
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

	systemPrompt, userPrompt := llm.BuildCoePrompt(text)
	raw, err := llm.Generate(c.Context(), systemPrompt, userPrompt)
	if err != nil {
		log.Printf("LLM call failed for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "The analysis service is unavailable. Please try again later.", nil)
	}

	var result extraction.CoeResult
	if err := llm.ExtractJSON(raw, &result); err != nil {
		log.Printf("Unparseable model output for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "The document could not be analyzed. Please try again.", nil)
	}
	extraction.FillPlaceholders(&result)

	periods, _ := json.Marshal(result.StudyPeriods)

	row := models.CoeInformation{
		UserID:   userId,
		FileName: fileHeader.Filename,
		Provider: llm.Active.Name(),

		CoeNumber:              result.CoeNumber,
		CoeCreatedDate:         result.CoeCreatedDate,
		CoeStatus:              result.CoeStatus,
		ProviderName:           result.ProviderName,
		ProviderCricosCode:     result.ProviderCricosCode,
		CourseName:             result.CourseName,
		CourseCricosCode:       result.CourseCricosCode,
		CourseLevel:            result.CourseLevel,
		CourseStartDate:        result.CourseStartDate,
		CourseEndDate:          result.CourseEndDate,
		InitialPrepaidTuition:  result.InitialPrepaidTuition,
		OtherPrepaidNonTuition: result.OtherPrepaidNonTuition,
		TotalTuitionFee:        result.TotalTuitionFee,
		OshcProvider:           result.OshcProvider,
		OshcType:               result.OshcType,
		OshcStartDate:          result.OshcStartDate,
		OshcEndDate:            result.OshcEndDate,
		StudentFamilyName:      result.StudentFamilyName,
		StudentGivenNames:      result.StudentGivenNames,
		StudentDateOfBirth:     result.StudentDateOfBirth,
		StudentNationality:     result.StudentNationality,
		StudentID:              result.StudentID,
		VisaSubclass:           result.VisaSubclass,
		EnglishTestType:        result.EnglishTestType,
		EnglishTestScore:       result.EnglishTestScore,
		Comments:               result.Comments,

		StudyPeriods: datatypes.JSON(periods),
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
		log.Printf("Error saving CoE info for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save CoE information!", nil)
	}

	utils.SendAnalysisReadyEmail(user.Email, user.Name, row.FileName)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "CoE analyzed successfully.", row)
}

func List(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var rows []models.CoeInformation
	if err := database.Database.Db.Where("user_id = ?", userId).Order("created_at DESC").Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch CoE information!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "CoE information fetched successfully.", rows)
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

	var row models.CoeInformation
	if err := database.Database.Db.Where("id = ? AND user_id = ?", id, userId).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "CoE information not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch CoE information!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "CoE information fetched successfully.", row)
}
