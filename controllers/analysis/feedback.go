package analysisController

import (
	"strings"
	"visadesk/database"
	"visadesk/middleware"
	"visadesk/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitFeedback records a single rating per (user, analysis) pair. A second
// submission is rejected with 409; the unique index backs this up even when
// two submissions race.
func SubmitFeedback(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid analysis id!", nil)
	}

	reqData, ok := c.Locals("validatedFeedback").(*struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var analysis models.Analysis
	if err := db.Where("id = ? AND user_id = ?", id, userId).First(&analysis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Analysis not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analysis!", nil)
	}

	var existing models.Feedback
	if err := db.Where("user_id = ? AND analysis_id = ?", userId, analysis.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Feedback has already been submitted for this analysis!", nil)
	}

	feedback := models.Feedback{
		UserID:     userId,
		AnalysisID: analysis.ID,
		Rating:     reqData.Rating,
		Comment:    reqData.Comment,
	}

	if err := db.Create(&feedback).Error; err != nil {
		// The unique index catches submissions that raced past the pre-check.
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Feedback has already been submitted for this analysis!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save feedback!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Feedback submitted successfully.", feedback)
}

// FeedbackForAnalysis returns the caller's feedback for one analysis, if any.
func FeedbackForAnalysis(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid analysis id!", nil)
	}

	var feedback models.Feedback
	if err := database.Database.Db.Where("user_id = ? AND analysis_id = ?", userId, id).First(&feedback).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No feedback submitted yet.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch feedback!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback fetched successfully.", feedback)
}
