package appointmentRoutes

import (
	appointmentControllers "visadesk/controllers/appointment"
	"visadesk/middleware"
	appointmentValidators "visadesk/validators/appointment"

	"github.com/gofiber/fiber/v2"
)

func SetupAppointmentRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/appointments", appointmentValidators.CreateAppointment(), middleware.JWTMiddleware, appointmentControllers.CreateAppointment)
	api.Get("/appointments", middleware.JWTMiddleware, appointmentControllers.AppointmentList)
	api.Patch("/appointments/:id/cancel", middleware.JWTMiddleware, appointmentControllers.CancelAppointment)

	api.Get("/admin/appointments", middleware.JWTMiddleware, middleware.AdminOnly, appointmentControllers.AdminAppointmentList)
	api.Patch("/admin/appointments/:id/status", appointmentValidators.SetStatus(), middleware.JWTMiddleware, middleware.AdminOnly, appointmentControllers.AdminSetStatus)
}
