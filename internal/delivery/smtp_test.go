package delivery

import (
	"errors"
	"strings"
	"testing"

	"github.com/mailbrief/mailbrief/internal/config"
	"github.com/mailbrief/mailbrief/internal/email"
)

func testMailConfig(provider, resendKey, host, user, pass string) *config.MailConfig {
	return &config.MailConfig{
		Provider:  provider,
		ResendKey: resendKey,
		Host:      host,
		Port:      587,
		Username:  user,
		Password:  pass,
	}
}

func TestBuildMessage(t *testing.T) {
	raw, err := buildMessage(&Message{
		From:     email.Address{Name: "Mailbrief", Address: "owner@example.com"},
		To:       []email.Address{{Address: "owner@example.com"}},
		Subject:  "Test report",
		HTMLBody: "<html><body>ok</body></html>",
	})
	if err != nil {
		t.Fatalf("buildMessage() error = %v", err)
	}

	msg := string(raw)
	for _, want := range []string{
		"Subject: Test report",
		"From:",
		"To:",
		"owner@example.com",
		"text/html",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestBuildMessage_TextFallback(t *testing.T) {
	raw, err := buildMessage(&Message{
		From:     email.Address{Address: "owner@example.com"},
		To:       []email.Address{{Address: "owner@example.com"}},
		Subject:  "Plain",
		TextBody: "plain body",
	})
	if err != nil {
		t.Fatalf("buildMessage() error = %v", err)
	}

	if !strings.Contains(string(raw), "text/plain") {
		t.Error("expected a text/plain content type")
	}
}

func TestNewSender(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		resend   string
		host     string
		user     string
		pass     string
		wantErr  error
	}{
		{name: "no provider", wantErr: ErrNoProvider},
		{name: "resend without key", provider: "resend", wantErr: ErrMissingCredentials},
		{name: "smtp without credentials", provider: "smtp", host: "smtp.example.com", wantErr: ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testMailConfig(tt.provider, tt.resend, tt.host, tt.user, tt.pass)
			_, err := NewSender(cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewSender() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if s, err := NewSender(testMailConfig("resend", "key", "", "", "")); err != nil || s == nil {
		t.Errorf("NewSender(resend) = %v, %v", s, err)
	}
	if s, err := NewSender(testMailConfig("smtp", "", "smtp.example.com", "u", "p")); err != nil || s == nil {
		t.Errorf("NewSender(smtp) = %v, %v", s, err)
	}
	if _, err := NewSender(testMailConfig("carrier-pigeon", "", "", "", "")); err == nil {
		t.Error("expected an error for an unknown provider")
	}
}
