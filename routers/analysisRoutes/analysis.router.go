package analysisRoutes

import (
	analysisControllers "visadesk/controllers/analysis"
	"visadesk/middleware"
	analysisValidators "visadesk/validators/analysis"

	"github.com/gofiber/fiber/v2"
)

func SetupAnalysisRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/analyze", middleware.JWTMiddleware, analysisControllers.Analyze)
	api.Get("/analyses", middleware.JWTMiddleware, analysisControllers.AnalysisList)
	api.Get("/analyses/:id", middleware.JWTMiddleware, analysisControllers.AnalysisDetail)
	api.Patch("/analyses/:id/visibility", middleware.JWTMiddleware, analysisControllers.UpdateVisibility)
	api.Post("/analyses/:id/feedback", analysisValidators.Feedback(), middleware.JWTMiddleware, analysisControllers.SubmitFeedback)
	api.Get("/analyses/:id/feedback", middleware.JWTMiddleware, analysisControllers.FeedbackForAnalysis)
}
