package appointmentValidator

import (
	"strings"
	"time"
	"visadesk/middleware"
	"visadesk/models"

	"github.com/gofiber/fiber/v2"
)

// CreateAppointment validator middleware
func CreateAppointment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Purpose     string    `json:"purpose"`
			ScheduledAt time.Time `json:"scheduledAt"`
			Mode        string    `json:"mode"`
			Notes       string    `json:"notes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Purpose)) < 3 {
			errors["purpose"] = "Purpose must be at least 3 characters long!"
		}

		if reqData.ScheduledAt.IsZero() || reqData.ScheduledAt.Before(time.Now()) {
			errors["scheduledAt"] = "Scheduled time must be in the future!"
		}

		if reqData.Mode != "" && reqData.Mode != "ONLINE" && reqData.Mode != "IN_PERSON" {
			errors["mode"] = "Mode must be ONLINE or IN_PERSON!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAppointment", reqData)
		return c.Next()
	}
}

// SetStatus validator middleware for admin status changes
func SetStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		switch reqData.Status {
		case models.AppointmentConfirmed, models.AppointmentCancelled, models.AppointmentCompleted:
		default:
			errors["status"] = "Status must be CONFIRMED, CANCELLED or COMPLETED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}
