package utils

import (
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	Send(to, body string) error
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender creates a TwilioSender with the given credentials
// and sending number.
func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: client, from: from}
}

// Send delivers the message.
func (ts *TwilioSender) Send(to, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(ts.from)
	params.SetBody(body)

	if _, err := ts.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	return nil
}
