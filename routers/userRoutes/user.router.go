package userRoutes

import (
	userController "lms/controllers/userControllers"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up profile and enrollment listing routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/me", middleware.JWTMiddleware, userController.GetProfile)
	userGroup.Get("/enrollments", middleware.JWTMiddleware, userController.GetEnrollments)
}
