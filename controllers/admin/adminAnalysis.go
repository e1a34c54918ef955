package adminController

import (
	"visadesk/database"
	"visadesk/middleware"
	"visadesk/models"

	"github.com/gofiber/fiber/v2"
)

// AnalysisList returns analyses across all users with search and filtering.
func AnalysisList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	search := c.Query("search")
	provider := c.Query("provider")
	userID := c.QueryInt("userId", 0)

	db := database.Database.Db.Model(&models.Analysis{})
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("file_name LIKE ? OR summary LIKE ?", pattern, pattern)
	}
	if provider != "" {
		db = db.Where("provider = ?", provider)
	}
	if userID > 0 {
		db = db.Where("user_id = ?", userID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analyses!", nil)
	}

	var analyses []models.Analysis
	if err := db.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&analyses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analyses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analyses fetched successfully.", fiber.Map{
		"analyses": analyses,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// FeedbackList returns all submitted feedback with the related analysis id so
// admins can gauge analysis quality.
func FeedbackList(c *fiber.Ctx) error {
	rating := c.QueryInt("rating", 0)

	db := database.Database.Db.Model(&models.Feedback{})
	if rating >= 1 && rating <= 5 {
		db = db.Where("rating = ?", rating)
	}

	var feedback []models.Feedback
	if err := db.Order("created_at DESC").Find(&feedback).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch feedback!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback fetched successfully.", feedback)
}
