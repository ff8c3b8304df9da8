package delivery

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends emails via Resend API
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a new Resend sender
func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
	}
}

func (s *ResendSender) Send(ctx context.Context, msg *Message) error {
	to := make([]string, len(msg.To))
	for i, addr := range msg.To {
		to[i] = addr.Address
	}

	params := &resend.SendEmailRequest{
		From:    msg.From.String(),
		To:      to,
		Subject: msg.Subject,
	}

	// Prefer HTML if available
	if msg.HTMLBody != "" {
		params.Html = msg.HTMLBody
	}
	if msg.TextBody != "" {
		params.Text = msg.TextBody
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}

	return nil
}
