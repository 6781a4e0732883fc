package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailNotifier sends transactional email through SendGrid. With no API key
// configured it logs and skips, so email never blocks enrollment flows.
type EmailNotifier struct{}

func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{}
}

func (n *EmailNotifier) send(toEmail, toName, subject, htmlBody string) error {
	cfg := config.AppConfig

	if cfg.SendgridApiKey == "" {
		log.Printf("[EMAIL] SendGrid not configured, skipping email %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("Course Marketplace", cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

func (n *EmailNotifier) SendEnrollmentConfirmation(email, name, courseTitle string) error {
	body := emailTemplate(
		"Enrollment Confirmed",
		fmt.Sprintf(`<p>Hi %s,</p>
		<p>You are now enrolled in <strong>%s</strong>. Your course material is available right away; your payment receipt will follow once the gateway confirms the transaction.</p>
		<p>Happy learning!</p>`, name, courseTitle),
	)
	return n.send(email, name, "You're enrolled in "+courseTitle, body)
}

func (n *EmailNotifier) SendPaymentFailed(email, name, courseTitle string) error {
	body := emailTemplate(
		"Payment Failed",
		fmt.Sprintf(`<p>Hi %s,</p>
		<p>Your payment for <strong>%s</strong> did not go through. Please retry the purchase from your enrollments page.</p>`, name, courseTitle),
	)
	return n.send(email, name, "Payment failed for "+courseTitle, body)
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
