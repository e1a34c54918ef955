package adminValidator

import (
	"visadesk/middleware"

	"github.com/gofiber/fiber/v2"
)

// UpdateQuota validator middleware
func UpdateQuota() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			MaxAnalyses int `json:"maxAnalyses"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.MaxAnalyses < 0 || reqData.MaxAnalyses > 1000 {
			errors["maxAnalyses"] = "Quota must be between 0 and 1000!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuota", reqData)
		return c.Next()
	}
}
