package webhookController

import (
	"errors"
	"log"

	"lms/middleware"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// paymentEvent is the gateway's terminal notification for a checkout
type paymentEvent struct {
	Event         string `json:"event"` // payment.succeeded or payment.failed
	CorrelationID string `json:"correlation_id"`
}

// HandlePaymentEvent settles the purchase referenced by the event. Delivery
// is at-least-once, so everything here must tolerate duplicates; unknown
// correlation ids are logged and acknowledged with 200 so the transport
// stops retrying an event we will never be able to apply.
func HandlePaymentEvent(c *fiber.Ctx) error {
	event := new(paymentEvent)
	if err := c.BodyParser(event); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event payload!", nil)
	}

	var outcome enrollment.PaymentOutcome
	switch event.Event {
	case "payment.succeeded":
		outcome = enrollment.OutcomeSucceeded
	case "payment.failed":
		outcome = enrollment.OutcomeFailed
	default:
		log.Printf("[WEBHOOK] Ignoring unhandled payment event type: %s", event.Event)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Event ignored.", fiber.Map{"received": true})
	}

	if event.CorrelationID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing correlation id!", nil)
	}

	payload := datatypes.JSON(c.Body())
	err := enrollment.Default.ApplyPaymentEvent(event.CorrelationID, outcome, payload)
	if err != nil {
		if errors.Is(err, enrollment.ErrUnknownCorrelation) {
			// Intentional drop: likely a duplicate or foreign event
			log.Printf("[WEBHOOK] Dropping payment event for unknown correlation id %s", event.CorrelationID)
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Event dropped.", fiber.Map{"received": true})
		}
		log.Printf("[WEBHOOK] Failed to apply payment event %s: %v", event.CorrelationID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event processed.", fiber.Map{"received": true})
}
