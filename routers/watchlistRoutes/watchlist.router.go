package watchlistRoutes

import (
	watchlistControllers "visadesk/controllers/watchlist"
	"visadesk/middleware"
	watchlistValidators "visadesk/validators/watchlist"

	"github.com/gofiber/fiber/v2"
)

func SetupWatchlistRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/watchlist", watchlistValidators.Item(), middleware.JWTMiddleware, watchlistControllers.CreateItem)
	api.Get("/watchlist", middleware.JWTMiddleware, watchlistControllers.ItemList)
	api.Put("/watchlist/:id", watchlistValidators.Item(), middleware.JWTMiddleware, watchlistControllers.UpdateItem)
	api.Delete("/watchlist/:id", middleware.JWTMiddleware, watchlistControllers.DeleteItem)
}
