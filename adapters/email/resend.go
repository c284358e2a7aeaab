package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"

	"regdash/domain/intake"
)

// ResendSender sends registration confirmation emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender with the given API key and from address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// SendConfirmation emails the registrant a short confirmation. Skipped
// silently when the registration has no usable email address.
func (s *ResendSender) SendConfirmation(ctx context.Context, reg *intake.Registration) error {
	if reg.Email == "" || reg.Email == intake.DefaultFieldValue {
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{reg.Email},
		Subject: fmt.Sprintf("Registration confirmed: %s", reg.Event),
		Html: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your registration for <strong>%s</strong> is confirmed.</p><p>Team: %s<br>College: %s</p>",
			reg.Name, reg.Event, reg.Team, reg.College,
		),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	log.Printf("[Email] Confirmation sent to %s (message %s)", reg.Email, sent.Id)
	return nil
}
