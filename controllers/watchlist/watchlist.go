package watchlistController

import (
	"time"
	"visadesk/database"
	"visadesk/middleware"
	"visadesk/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type watchlistRequest = struct {
	ScholarshipName string     `json:"scholarshipName"`
	ProviderName    string     `json:"providerName"`
	Country         string     `json:"country"`
	Amount          string     `json:"amount"`
	Deadline        *time.Time `json:"deadline"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes"`
}

func CreateItem(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedWatchlistItem").(*watchlistRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	item := models.WatchlistItem{
		UserID:          userId,
		ScholarshipName: reqData.ScholarshipName,
		ProviderName:    reqData.ProviderName,
		Country:         reqData.Country,
		Amount:          reqData.Amount,
		Deadline:        reqData.Deadline,
		Notes:           reqData.Notes,
	}
	if reqData.Status != "" {
		item.Status = reqData.Status
	}

	if err := database.Database.Db.Create(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create watchlist item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Watchlist item created successfully.", item)
}

func ItemList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	status := c.Query("status")

	db := database.Database.Db.Where("user_id = ?", userId)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var items []models.WatchlistItem
	if err := db.Order("deadline ASC NULLS LAST").Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch watchlist!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Watchlist fetched successfully.", items)
}

func UpdateItem(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid watchlist item id!", nil)
	}

	reqData, ok := c.Locals("validatedWatchlistItem").(*watchlistRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var item models.WatchlistItem
	if err := database.Database.Db.Where("id = ? AND user_id = ?", id, userId).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Watchlist item not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch watchlist item!", nil)
	}

	item.ScholarshipName = reqData.ScholarshipName
	item.ProviderName = reqData.ProviderName
	item.Country = reqData.Country
	item.Amount = reqData.Amount
	item.Notes = reqData.Notes
	if reqData.Status != "" {
		item.Status = reqData.Status
	}
	if reqData.Deadline != nil && (item.Deadline == nil || !reqData.Deadline.Equal(*item.Deadline)) {
		item.Deadline = reqData.Deadline
		// A new deadline re-arms the warning email.
		item.DeadlineWarned = false
	}

	if err := database.Database.Db.Save(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update watchlist item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Watchlist item updated successfully.", item)
}

func DeleteItem(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid watchlist item id!", nil)
	}

	result := database.Database.Db.Where("user_id = ?", userId).Delete(&models.WatchlistItem{}, id)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete watchlist item!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Watchlist item not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Watchlist item deleted successfully.", nil)
}
