package analysisController

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

// extractText is swappable so handler tests can run without real PDF fixtures.
var extractText = utils.ExtractText

var errQuotaExhausted = errors.New("analysis quota exhausted")

// Analyze runs the extraction pipeline for a visa rejection letter:
// upload gate -> text extraction -> prompt -> model call -> parse -> persist.
// Nothing is written unless every stage before persistence succeeded, and the
// quota increment shares a transaction with the insert.
func Analyze(c *fiber.Ctx) error {
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

	// Cheap pre-check so exhausted users do not burn a model call. The
	// binding check is the conditional increment inside the transaction.
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

	systemPrompt, userPrompt := llm.BuildVisaRejectionPrompt(text)
	raw, err := llm.Generate(c.Context(), systemPrompt, userPrompt)
	if err != nil {
		log.Printf("LLM call failed for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "The analysis service is unavailable. Please try again later.", nil)
	}

	var result extraction.VisaAnalysisResult
	if err := llm.ExtractJSON(raw, &result); err != nil {
		log.Printf("Unparseable model output for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "The document could not be analyzed. Please try again.", nil)
	}
	if err := extraction.Validate(&result); err != nil {
		log.Printf("Model output failed validation for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "The document could not be analyzed. Please try again.", nil)
	}

	reasons, _ := json.Marshal(result.RejectionReasons)
	recommendations, _ := json.Marshal(result.Recommendations)
	nextSteps, _ := json.Marshal(result.NextSteps)

	analysis := models.Analysis{
		UserID:           userId,
		FileName:         fileHeader.Filename,
		ExtractedText:    text,
		Summary:          result.Summary,
		RejectionReasons: datatypes.JSON(reasons),
		Recommendations:  datatypes.JSON(recommendations),
		NextSteps:        datatypes.JSON(nextSteps),
		Provider:         llm.Active.Name(),
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		// Atomic conditional increment. Concurrent requests racing on the
		// same user cannot push the counter past the quota.
		res := tx.Model(&models.User{}).
			Where("id = ? AND analysis_count < max_analyses", userId).
			UpdateColumn("analysis_count", gorm.Expr("analysis_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errQuotaExhausted
		}

		return tx.Create(&analysis).Error
	})
	if err != nil {
		if errors.Is(err, errQuotaExhausted) {
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Analysis quota exhausted. Contact support to increase your limit.", nil)
		}
		log.Printf("Error saving analysis for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save analysis!", nil)
	}

	utils.SendAnalysisReadyEmail(user.Email, user.Name, analysis.FileName)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Document analyzed successfully.", analysis)
}

func AnalysisList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	db := database.Database.Db

	var total int64
	if err := db.Model(&models.Analysis{}).Where("user_id = ?", userId).Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analyses!", nil)
	}

	var analyses []models.Analysis
	if err := db.Where("user_id = ?", userId).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&analyses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analyses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analyses fetched successfully.", fiber.Map{
		"analyses": analyses,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func AnalysisDetail(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid analysis id!", nil)
	}

	var analysis models.Analysis
	if err := database.Database.Db.Where("id = ?", id).First(&analysis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Analysis not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analysis!", nil)
	}

	// Owner, public analyses, or admin
	if analysis.UserID != userId && !analysis.IsPublic {
		var requester models.User
		if err := database.Database.Db.Where("id = ?", userId).First(&requester).Error; err != nil || requester.Role != "ADMIN" {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this analysis!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analysis fetched successfully.", analysis)
}

// UpdateVisibility is the only mutation allowed on a persisted analysis.
func UpdateVisibility(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid analysis id!", nil)
	}

	reqData := new(struct {
		IsPublic *bool `json:"isPublic"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.IsPublic == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var analysis models.Analysis
	if err := database.Database.Db.Where("id = ? AND user_id = ?", id, userId).First(&analysis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Analysis not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analysis!", nil)
	}

	analysis.IsPublic = *reqData.IsPublic
	if err := database.Database.Db.Save(&analysis).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update analysis!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Visibility updated successfully.", analysis)
}
