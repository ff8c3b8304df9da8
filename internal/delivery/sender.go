// Package delivery sends rendered reports through a configured mail
// provider. A send either succeeds or fails immediately; there is no
// retry or queuing layer.
package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/mailbrief/mailbrief/internal/config"
	"github.com/mailbrief/mailbrief/internal/email"
)

var (
	// ErrNoProvider is returned when a send is requested but no mail
	// provider is configured.
	ErrNoProvider = errors.New("no mail provider configured")

	// ErrMissingCredentials is returned before any network call when
	// the configured provider lacks its credential.
	ErrMissingCredentials = errors.New("mail credentials not configured")
)

// Message is an outbound email.
type Message struct {
	From     email.Address
	To       []email.Address
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender delivers a message to its recipients.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// NewSender builds the Sender for the configured provider. It fails
// fast on missing credentials so a doomed network call is never made.
func NewSender(cfg *config.MailConfig) (Sender, error) {
	switch cfg.Provider {
	case "resend":
		if cfg.ResendKey == "" {
			return nil, fmt.Errorf("resend: %w", ErrMissingCredentials)
		}
		return NewResendSender(cfg.ResendKey), nil
	case "smtp":
		if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
			return nil, fmt.Errorf("smtp: %w", ErrMissingCredentials)
		}
		return NewSMTPSender(cfg.Host, cfg.Port, cfg.Username, cfg.Password), nil
	case "":
		return nil, ErrNoProvider
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
