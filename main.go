package main

import (
	"visadesk/config"
	"visadesk/database"
	"visadesk/llm"
	adminRoutes "visadesk/routers/adminRoutes"
	analysisRoutes "visadesk/routers/analysisRoutes"
	appointmentRoutes "visadesk/routers/appointmentRoutes"
	authRoutes "visadesk/routers/authRoutes"
	documentRoutes "visadesk/routers/documentRoutes"
	templateRoutes "visadesk/routers/templateRoutes"
	updateRoutes "visadesk/routers/updateRoutes"
	watchlistRoutes "visadesk/routers/watchlistRoutes"
	"visadesk/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	if err := llm.Init(); err != nil {
		log.Printf("LLM provider not ready: %v", err)
	}

	// Default body limit is 4MB, documents can be up to 10MB.
	app := fiber.New(fiber.Config{
		BodyLimit: 12 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",     // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded template files
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	analysisRoutes.SetupAnalysisRoutes(app)
	documentRoutes.SetupDocumentRoutes(app)
	appointmentRoutes.SetupAppointmentRoutes(app)
	templateRoutes.SetupTemplateRoutes(app)
	updateRoutes.SetupUpdateRoutes(app)
	watchlistRoutes.SetupWatchlistRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	utils.InitializeReminderScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
