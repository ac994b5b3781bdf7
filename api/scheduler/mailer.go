package scheduler

import (
	"context"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends a single email and reports the outcome. The dispatch pass only
// cares about success or failure; transport details live behind this interface.
type Mailer interface {
	Send(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error
}

// SendGridMailer sends email through SendGrid
type SendGridMailer struct {
	FromName  string
	FromEmail string
}

// NewSendGridMailer creates a mailer with the RxBuddy sender identity
func NewSendGridMailer() *SendGridMailer {
	return &SendGridMailer{
		FromName:  "RxBuddy",
		FromEmail: "no-reply@rxbuddy.app",
	}
}

// Send delivers one email. A non-2xx SendGrid status is a send failure so the
// dispatch pass records it against the reminder.
func (m *SendGridMailer) Send(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY not set")
	}

	from := mail.NewEmail(m.FromName, m.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}
