package adminRoutes

import (
	adminControllers "visadesk/controllers/admin"
	"visadesk/middleware"
	adminValidators "visadesk/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/api/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	admin.Get("/users", adminControllers.UserList)
	admin.Patch("/users/:id/quota", adminValidators.UpdateQuota(), adminControllers.UpdateQuota)
	admin.Patch("/users/:id/block", adminControllers.SetBlocked)

	admin.Get("/analyses", adminControllers.AnalysisList)
	admin.Get("/feedback", adminControllers.FeedbackList)
	admin.Get("/stats", adminControllers.Stats)

	admin.Get("/export/users", adminControllers.ExportUsers)
	admin.Get("/export/analyses", adminControllers.ExportAnalyses)
}
