package updateController

import (
	"time"
	"visadesk/database"
	"visadesk/middleware"
	"visadesk/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UpdateList is the public feed: published updates only, newest first.
func UpdateList(c *fiber.Ctx) error {
	category := c.Query("category")

	db := database.Database.Db.Model(&models.Update{}).Where("is_published = ?", true)
	if category != "" {
		db = db.Where("category = ?", category)
	}

	var updates []models.Update
	if err := db.Order("published_at DESC").Find(&updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch updates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Updates fetched successfully.", updates)
}

func AdminCreateUpdate(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUpdate").(*struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		Category    string `json:"category"`
		IsPublished bool   `json:"isPublished"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	update := models.Update{
		Title:       reqData.Title,
		Content:     reqData.Content,
		IsPublished: reqData.IsPublished,
		CreatedBy:   userId,
	}
	if reqData.Category != "" {
		update.Category = reqData.Category
	}
	if reqData.IsPublished {
		now := time.Now()
		update.PublishedAt = &now
	}

	if err := database.Database.Db.Create(&update).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create update!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Update created successfully.", update)
}

func AdminUpdateList(c *fiber.Ctx) error {
	var updates []models.Update
	if err := database.Database.Db.Order("created_at DESC").Find(&updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch updates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Updates fetched successfully.", updates)
}

func AdminEditUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid update id!", nil)
	}

	reqData, ok := c.Locals("validatedUpdate").(*struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		Category    string `json:"category"`
		IsPublished bool   `json:"isPublished"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var update models.Update
	if err := database.Database.Db.Where("id = ?", id).First(&update).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Update not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch update!", nil)
	}

	update.Title = reqData.Title
	update.Content = reqData.Content
	if reqData.Category != "" {
		update.Category = reqData.Category
	}
	if reqData.IsPublished && !update.IsPublished {
		now := time.Now()
		update.PublishedAt = &now
	}
	update.IsPublished = reqData.IsPublished

	if err := database.Database.Db.Save(&update).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Update edited successfully.", update)
}

func AdminDeleteUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid update id!", nil)
	}

	result := database.Database.Db.Delete(&models.Update{}, id)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete update!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Update not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Update deleted successfully.", nil)
}
