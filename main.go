package main

import (
	"log"

	"lms/config"
	"lms/database"
	courseRoutes "lms/routers/courseRoutes"
	educatorRoutes "lms/routers/educatorRoutes"
	userRoutes "lms/routers/userRoutes"
	webhookRoutes "lms/routers/webhookRoutes"
	"lms/services/enrollment"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	enrollment.Default = enrollment.NewService(
		database.Database.Db,
		utils.NewPaymentGateway(),
		utils.NewEmailNotifier(),
	)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization,X-Webhook-Signature",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	courseRoutes.SetupCourseRoutes(app)
	educatorRoutes.SetupEducatorRoutes(app)
	userRoutes.SetupUserRoutes(app)
	webhookRoutes.SetupWebhookRoutes(app)

	utils.InitializePendingSweeper()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
