package controllers

import (
	"errors"

	"lms/middleware"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// MarkContentComplete records completion of one content item for the user
func MarkContentComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	contentID := c.Locals("contentID").(uint)

	alreadyComplete, err := enrollment.Default.MarkComplete(userID, courseID, contentID)
	if err != nil {
		switch {
		case errors.Is(err, enrollment.ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
		case errors.Is(err, enrollment.ErrInvalidReference):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found in this course!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	message := "Progress updated!"
	if alreadyComplete {
		message = "Content already completed!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"already_completed": alreadyComplete,
	})
}

// GetUserProgress returns completed content ids and the course total
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	progress, err := enrollment.Default.GetProgress(userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}
