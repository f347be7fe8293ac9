package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vlady-store/models"
)

// ContactService stores contact form messages and forwards them to
// the shop's admin mailbox. Forwarding is fire-and-forget; an email
// failure never fails the submission.
type ContactService struct {
	contacts   ContactStore
	email      EmailSender
	adminEmail string
	log        *slog.Logger
}

// NewContactService creates a ContactService.
func NewContactService(contacts ContactStore, email EmailSender, adminEmail string, log *slog.Logger) *ContactService {
	return &ContactService{contacts: contacts, email: email, adminEmail: adminEmail, log: log}
}

// Submit persists the message, then forwards it by email in the
// background.
func (s *ContactService) Submit(ctx context.Context, contact *models.Contact) error {
	contact.Date = time.Now()
	if err := s.contacts.Create(ctx, contact); err != nil {
		return err
	}

	go func(c models.Contact) {
		subject := "New Contact Form Submission"
		content := fmt.Sprintf("Name: %s\nPhone: %s\nEmail: %s\nMessage: %s", c.Name, c.Phone, c.Email, c.Message)
		if err := s.email.Send(s.adminEmail, subject, content); err != nil {
			s.log.Error("failed to forward contact message", "contact", c.ID.Hex(), "error", err)
		}
	}(*contact)

	return nil
}
