package analysisValidator

import (
	"strings"
	"visadesk/middleware"

	"github.com/gofiber/fiber/v2"
)

// Feedback validator middleware
func Feedback() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}

		if len(strings.TrimSpace(reqData.Comment)) > 2000 {
			errors["comment"] = "Comment must be at most 2000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFeedback", reqData)
		return c.Next()
	}
}
