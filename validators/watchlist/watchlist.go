package watchlistValidator

import (
	"strings"
	"time"
	"visadesk/middleware"

	"github.com/gofiber/fiber/v2"
)

var validStatuses = map[string]bool{
	"PLANNING":    true,
	"APPLIED":     true,
	"SHORTLISTED": true,
	"AWARDED":     true,
	"REJECTED":    true,
}

// Item validator middleware shared by create and update
func Item() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ScholarshipName string     `json:"scholarshipName"`
			ProviderName    string     `json:"providerName"`
			Country         string     `json:"country"`
			Amount          string     `json:"amount"`
			Deadline        *time.Time `json:"deadline"`
			Status          string     `json:"status"`
			Notes           string     `json:"notes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.ScholarshipName)) < 2 {
			errors["scholarshipName"] = "Scholarship name must be at least 2 characters long!"
		}

		if reqData.Status != "" && !validStatuses[reqData.Status] {
			errors["status"] = "Status must be PLANNING, APPLIED, SHORTLISTED, AWARDED or REJECTED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWatchlistItem", reqData)
		return c.Next()
	}
}
