package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vlady-store/models"
)

func TestContactSubmit(t *testing.T) {
	contacts := &fakeContactStore{}
	email := &fakeEmailSender{}
	svc := NewContactService(contacts, email, "admin@vlady.example", testLogger())

	contact := &models.Contact{
		Name:    "Asha",
		Phone:   "+919876543210",
		Email:   "asha@example.com",
		Message: "Is the blue saree back in stock?",
	}
	require.NoError(t, svc.Submit(context.Background(), contact))

	require.Len(t, contacts.contacts, 1)
	assert.False(t, contacts.contacts[0].Date.IsZero())

	assert.Eventually(t, func() bool {
		return email.count() == 1
	}, 2*time.Second, 10*time.Millisecond)
	sent := email.last()
	assert.Equal(t, "admin@vlady.example", sent.To)
	assert.True(t, strings.Contains(sent.Content, "blue saree"))
}
