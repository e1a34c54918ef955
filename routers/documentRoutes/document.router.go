package documentRoutes

import (
	coeControllers "visadesk/controllers/coe"
	offerLetterControllers "visadesk/controllers/offerletter"
	"visadesk/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDocumentRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/offer-letter-information/extract", middleware.JWTMiddleware, offerLetterControllers.Extract)
	api.Get("/offer-letter-information", middleware.JWTMiddleware, offerLetterControllers.List)
	api.Get("/offer-letter-information/:id", middleware.JWTMiddleware, offerLetterControllers.Detail)

	api.Post("/coe-info/extract", middleware.JWTMiddleware, coeControllers.Extract)
	api.Get("/coe-info", middleware.JWTMiddleware, coeControllers.List)
	api.Get("/coe-info/:id", middleware.JWTMiddleware, coeControllers.Detail)
}
