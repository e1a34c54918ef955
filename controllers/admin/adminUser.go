package adminController

import (
	"time"
	"visadesk/database"
	"visadesk/middleware"
	"visadesk/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func UserList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	search := c.Query("search")
	role := c.Query("role")

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}
	if role != "" {
		db = db.Where("role = ?", role)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	var users []models.User
	if err := db.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// UpdateQuota raises or lowers a user's analysis cap.
func UpdateQuota(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData, ok := c.Locals("validatedQuota").(*struct {
		MaxAnalyses int `json:"maxAnalyses"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user!", nil)
	}

	user.MaxAnalyses = reqData.MaxAnalyses
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quota!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quota updated successfully.", user)
}

// SetBlocked blocks or unblocks a user account.
func SetBlocked(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData := new(struct {
		IsBlocked *bool `json:"isBlocked"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.IsBlocked == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user!", nil)
	}

	user.IsBlocked = *reqData.IsBlocked
	if user.IsBlocked {
		until := time.Now().Add(100 * 365 * 24 * time.Hour) // until explicitly unblocked
		user.BlockedUntil = &until
	} else {
		user.BlockedUntil = nil
		user.FailedLoginAttempts = 0
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully.", user)
}

// Stats powers the admin dashboard cards.
func Stats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalAnalyses, totalOfferLetters, totalCoes, pendingAppointments int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&models.Analysis{}).Count(&totalAnalyses)
	db.Model(&models.OfferLetterInfo{}).Count(&totalOfferLetters)
	db.Model(&models.CoeInformation{}).Count(&totalCoes)
	db.Model(&models.Appointment{}).Where("status = ?", models.AppointmentPending).Count(&pendingAppointments)

	// Last 7 days of analysis activity
	type dayCount struct {
		Day   string `json:"day"`
		Count int64  `json:"count"`
	}
	series := make([]dayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		dayStart := time.Now().AddDate(0, 0, -i).Truncate(24 * time.Hour)
		dayEnd := dayStart.Add(24 * time.Hour)

		var count int64
		db.Model(&models.Analysis{}).Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).Count(&count)
		series = append(series, dayCount{Day: dayStart.Format("2006-01-02"), Count: count})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully.", fiber.Map{
		"totalUsers":          totalUsers,
		"totalAnalyses":       totalAnalyses,
		"totalOfferLetters":   totalOfferLetters,
		"totalCoes":           totalCoes,
		"pendingAppointments": pendingAppointments,
		"analysesLast7Days":   series,
	})
}
