package controllers

import (
	"errors"

	"lms/middleware"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// RateCourse upserts the user's 1-5 rating for a course
func RateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	rating := c.Locals("validatedRating").(int)

	if err := enrollment.Default.Rate(userID, courseID, rating); err != nil {
		switch {
		case errors.Is(err, enrollment.ErrInvalidRating):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
		case errors.Is(err, enrollment.ErrInvalidReference):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, enrollment.ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to rate this course!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save rating!", nil)
		}
	}

	avg, err := enrollment.Default.AverageRating(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch rating!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rating saved successfully!", fiber.Map{
		"average_rating": avg,
	})
}
