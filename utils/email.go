// utils/email.go
package utils

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional mail through SendGrid. Callers
// treat it as fire-and-forget: delivery failures are logged by the
// caller, never surfaced to the shopper.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService returns an EmailService using the given API key and
// sender address.
func NewEmailService(apiKey, sender string) *EmailService {
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

// Send delivers a plain-text email to the specified recipient.
func (es *EmailService) Send(toEmail, subject, content string) error {
	from := mail.NewEmail("V Lady", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, content, content)

	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email: status %d", resp.StatusCode)
	}
	return nil
}
