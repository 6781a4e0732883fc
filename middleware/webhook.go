package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"lms/config"

	"github.com/gofiber/fiber/v2"
)

// VerifyWebhookSignature checks the HMAC-SHA256 signature the delivery
// transport puts on every event. Handlers behind this middleware can trust
// the payload; an unsigned or tampered event never reaches them.
func VerifyWebhookSignature(c *fiber.Ctx) error {
	signature := c.Get("X-Webhook-Signature")
	if signature == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing webhook signature!", nil)
	}

	mac := hmac.New(sha256.New, []byte(config.AppConfig.WebhookSecret))
	mac.Write(c.Body())
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid webhook signature!", nil)
	}

	return c.Next()
}

// SignWebhookPayload computes the signature for a payload. Used by tests
// and by local tooling that replays events.
func SignWebhookPayload(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(config.AppConfig.WebhookSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
