package paymentController

import (
	"errors"

	"lms/middleware"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// InitiateCheckout starts a purchase and returns the payment page URL. The
// user is enrolled optimistically before the gateway confirms payment.
func InitiateCheckout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	result, err := enrollment.Default.InitiateCheckout(userID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, enrollment.ErrAlreadyEnrolled):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
		case errors.Is(err, enrollment.ErrInvalidReference):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start checkout!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Redirecting to payment...", fiber.Map{
		"session_url":    result.PaymentURL,
		"correlation_id": result.CorrelationID,
		"amount":         result.Amount,
		"purchase_id":    result.PurchaseID,
	})
}
