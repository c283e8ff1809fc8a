package utils

import (
	"fmt"

	"github.com/keighl/postmark"
)

// EmailService handles sending emails using Postmark. A nil *EmailService is
// valid and sends nothing, so the server runs without a Postmark token.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService returns a Postmark-backed email service, or nil when no API
// token is configured
func NewEmailService(apiToken, sender string) *EmailService {
	if apiToken == "" {
		return nil
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es == nil {
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendBookingConfirmation emails the sender after a parcel booking is stored
func (es *EmailService) SendBookingConfirmation(toEmail, name, trackingID string) error {
	subject := "Your QuickDel booking is confirmed"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Your parcel booking has been received. Track it with the ID <strong>%s</strong>.<br><br>Thank you for choosing QuickDel!",
		name,
		trackingID,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
