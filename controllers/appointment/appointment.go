package appointmentController

import (
	"time"
	"visadesk/database"
	"visadesk/middleware"
	"visadesk/models"
	"visadesk/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateAppointment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAppointment").(*struct {
		Purpose     string    `json:"purpose"`
		ScheduledAt time.Time `json:"scheduledAt"`
		Mode        string    `json:"mode"`
		Notes       string    `json:"notes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	appointment := models.Appointment{
		UserID:      userId,
		Purpose:     reqData.Purpose,
		ScheduledAt: reqData.ScheduledAt,
		Notes:       reqData.Notes,
		Status:      models.AppointmentPending,
	}
	if reqData.Mode != "" {
		appointment.Mode = reqData.Mode
	}

	if err := database.Database.Db.Create(&appointment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create appointment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Appointment requested successfully.", appointment)
}

func AppointmentList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var appointments []models.Appointment
	if err := database.Database.Db.Where("user_id = ?", userId).Order("scheduled_at ASC").Find(&appointments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch appointments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Appointments fetched successfully.", appointments)
}

// CancelAppointment lets a user cancel their own pending or confirmed
// appointment.
func CancelAppointment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid appointment id!", nil)
	}

	var appointment models.Appointment
	if err := database.Database.Db.Where("id = ? AND user_id = ?", id, userId).First(&appointment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Appointment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch appointment!", nil)
	}

	if appointment.Status == models.AppointmentCompleted || appointment.Status == models.AppointmentCancelled {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Appointment can no longer be cancelled!", nil)
	}

	appointment.Status = models.AppointmentCancelled
	if err := database.Database.Db.Save(&appointment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel appointment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Appointment cancelled successfully.", appointment)
}

// AdminSetStatus lets an admin confirm or complete any appointment. A status
// change notifies the owner by email.
func AdminSetStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid appointment id!", nil)
	}

	reqData, ok := c.Locals("validatedStatus").(*struct {
		Status string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var appointment models.Appointment
	if err := database.Database.Db.Where("id = ?", id).First(&appointment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Appointment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch appointment!", nil)
	}

	appointment.Status = reqData.Status
	if err := database.Database.Db.Save(&appointment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update appointment!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", appointment.UserID).First(&user).Error; err == nil {
		utils.SendAppointmentStatusEmail(user.Email, user.Name, appointment.Purpose, appointment.Status, appointment.ScheduledAt)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Appointment status updated successfully.", appointment)
}

// AdminAppointmentList returns all appointments, optionally filtered by
// status.
func AdminAppointmentList(c *fiber.Ctx) error {
	status := c.Query("status")

	db := database.Database.Db.Model(&models.Appointment{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := db.Order("scheduled_at ASC").Find(&appointments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch appointments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Appointments fetched successfully.", appointments)
}
