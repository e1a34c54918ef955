package updateRoutes

import (
	updateControllers "visadesk/controllers/update"
	"visadesk/middleware"
	updateValidators "visadesk/validators/update"

	"github.com/gofiber/fiber/v2"
)

func SetupUpdateRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/updates", middleware.JWTMiddleware, updateControllers.UpdateList)

	api.Get("/admin/updates", middleware.JWTMiddleware, middleware.AdminOnly, updateControllers.AdminUpdateList)
	api.Post("/admin/updates", updateValidators.Update(), middleware.JWTMiddleware, middleware.AdminOnly, updateControllers.AdminCreateUpdate)
	api.Put("/admin/updates/:id", updateValidators.Update(), middleware.JWTMiddleware, middleware.AdminOnly, updateControllers.AdminEditUpdate)
	api.Delete("/admin/updates/:id", middleware.JWTMiddleware, middleware.AdminOnly, updateControllers.AdminDeleteUpdate)
}
