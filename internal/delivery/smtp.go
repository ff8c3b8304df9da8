package delivery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// SMTPSender sends emails through an SMTP submission endpoint using
// STARTTLS and PLAIN authentication.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(host string, port int, username, password string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	raw, err := buildMessage(msg)
	if err != nil {
		return fmt.Errorf("smtp: build message: %w", err)
	}

	rcpts := make([]string, len(msg.To))
	for i, addr := range msg.To {
		rcpts[i] = addr.Address
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	c, err := smtp.DialStartTLS(addr, nil)
	if err != nil {
		return fmt.Errorf("smtp: dial %s: %w", addr, err)
	}
	defer c.Close()

	if err := c.Auth(sasl.NewPlainClient("", s.username, s.password)); err != nil {
		return fmt.Errorf("smtp: auth: %w", err)
	}

	if err := c.SendMail(msg.From.Address, rcpts, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}

	return c.Quit()
}

// buildMessage assembles the MIME document for the outbound email.
func buildMessage(msg *Message) ([]byte, error) {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Name: msg.From.Name, Address: msg.From.Address}})

	to := make([]*mail.Address, len(msg.To))
	for i, a := range msg.To {
		to[i] = &mail.Address{Name: a.Name, Address: a.Address}
	}
	h.SetAddressList("To", to)
	h.SetSubject(msg.Subject)

	body := msg.HTMLBody
	contentType := "text/html"
	if body == "" {
		body = msg.TextBody
		contentType = "text/plain"
	}
	h.SetContentType(contentType, map[string]string{"charset": "utf-8"})

	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
