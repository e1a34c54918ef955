package updateValidator

import (
	"strings"
	"visadesk/middleware"

	"github.com/gofiber/fiber/v2"
)

var validCategories = map[string]bool{
	"NEWS":        true,
	"POLICY":      true,
	"SCHOLARSHIP": true,
	"DEADLINE":    true,
}

// Update validator middleware shared by create and edit
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Content     string `json:"content"`
			Category    string `json:"category"`
			IsPublished bool   `json:"isPublished"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(strings.TrimSpace(reqData.Content)) == 0 {
			errors["content"] = "Content is required!"
		}

		if reqData.Category != "" && !validCategories[reqData.Category] {
			errors["category"] = "Category must be NEWS, POLICY, SCHOLARSHIP or DEADLINE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdate", reqData)
		return c.Next()
	}
}
