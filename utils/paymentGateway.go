package utils

import (
	"fmt"
	"log"
	"math"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// PaymentGateway creates hosted payment links against the gateway's REST
// API. Without gateway credentials it falls back to the configured static
// link, which keeps local environments working end to end.
type PaymentGateway struct {
	client *resty.Client
}

func NewPaymentGateway() *PaymentGateway {
	return &PaymentGateway{client: resty.New()}
}

type paymentLinkResponse struct {
	ShortURL string `json:"short_url"`
}

// CreatePaymentLink asks the gateway for a payment page URL. The
// correlation id rides along as the reference so the gateway echoes it back
// in the settlement webhook.
func (g *PaymentGateway) CreatePaymentLink(correlationID string, amount float64, courseTitle string) (string, error) {
	cfg := config.AppConfig

	if cfg.PaymentApiURL == "" || cfg.PaymentApiKey == "" {
		log.Printf("[PAYMENT] Gateway not configured, using fallback link for %s", correlationID)
		return cfg.PaymentFallbackLink, nil
	}

	var result paymentLinkResponse
	resp, err := g.client.R().
		SetHeader("Authorization", "Bearer "+cfg.PaymentApiKey).
		SetBody(map[string]interface{}{
			"amount":       int64(math.Round(amount * 100)), // minor units
			"currency":     "INR",
			"reference_id": correlationID,
			"description":  "Course purchase: " + courseTitle,
		}).
		SetResult(&result).
		Post(cfg.PaymentApiURL + "/payment_links")
	if err != nil {
		return "", fmt.Errorf("payment link request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("payment link request failed with status %d", resp.StatusCode())
	}
	if result.ShortURL == "" {
		return "", fmt.Errorf("payment gateway returned no link")
	}

	return result.ShortURL, nil
}
