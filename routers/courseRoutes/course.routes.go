package courseRoutes

import (
	courseControllers "lms/controllers/course"
	paymentController "lms/controllers/payment"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog
	courseGroup.Get("/list", middleware.JWTMiddleware, courseControllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, courseValidator.CourseID(), courseControllers.GetCourseDetails)

	// Checkout (optimistic enrollment + payment redirect)
	courseGroup.Post("/:id/checkout", middleware.JWTMiddleware, courseValidator.CourseID(), paymentController.InitiateCheckout)

	// Progress tracking
	courseGroup.Post("/:course_id/content/:content_id/complete", middleware.JWTMiddleware, courseValidator.MarkContentComplete(), courseControllers.MarkContentComplete)
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, courseValidator.GetCourseProgress(), courseControllers.GetUserProgress)

	// Ratings
	courseGroup.Post("/:id/rate", middleware.JWTMiddleware, courseValidator.RateCourse(), courseControllers.RateCourse)
}
