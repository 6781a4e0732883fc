package educatorRoutes

import (
	educatorController "lms/controllers/educator"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
	educatorValidator "lms/validators/educator"

	"github.com/gofiber/fiber/v2"
)

// SetupEducatorRoutes sets up educator catalog and dashboard routes
func SetupEducatorRoutes(app *fiber.App) {
	educatorGroup := app.Group("/educator")

	// Role upgrade is open to any authenticated user
	educatorGroup.Post("/update-role", middleware.JWTMiddleware, educatorController.BecomeEducator)

	// Everything else requires the educator role
	educatorOnly := middleware.RequireRole(models.RoleEducator)

	educatorGroup.Post("/course", middleware.JWTMiddleware, educatorOnly, educatorValidator.CreateCourse(), educatorController.CreateCourse)
	educatorGroup.Get("/courses", middleware.JWTMiddleware, educatorOnly, educatorController.GetMyCourses)
	educatorGroup.Delete("/course/:id", middleware.JWTMiddleware, educatorOnly, courseValidator.CourseID(), educatorController.DeleteCourse)
	educatorGroup.Get("/dashboard", middleware.JWTMiddleware, educatorOnly, educatorController.Dashboard)
	educatorGroup.Get("/enrolled-students", middleware.JWTMiddleware, educatorOnly, educatorController.GetEnrolledStudents)
}
