package templateRoutes

import (
	templateControllers "visadesk/controllers/template"
	"visadesk/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupTemplateRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/templates", middleware.JWTMiddleware, templateControllers.TemplateList)

	api.Post("/admin/templates", middleware.JWTMiddleware, middleware.AdminOnly, templateControllers.CreateTemplate)
	api.Put("/admin/templates/:id", middleware.JWTMiddleware, middleware.AdminOnly, templateControllers.UpdateTemplate)
	api.Delete("/admin/templates/:id", middleware.JWTMiddleware, middleware.AdminOnly, templateControllers.DeleteTemplate)
}
