package webhookRoutes

import (
	webhookController "lms/controllers/webhook"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupWebhookRoutes sets up the signed webhook endpoints. No JWT here;
// the HMAC signature is the authentication.
func SetupWebhookRoutes(app *fiber.App) {
	webhookGroup := app.Group("/webhook", middleware.VerifyWebhookSignature)

	webhookGroup.Post("/payment", webhookController.HandlePaymentEvent)
	webhookGroup.Post("/user", webhookController.HandleUserEvent)
}
