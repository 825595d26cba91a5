// Package smtp delivers composed mail over plain SMTP.
package smtp

import (
	"context"
	"fmt"
	"net/smtp"

	"orderflow/internal/notifications"
	"orderflow/internal/pkg/errs"
)

// Sender sends mail through an SMTP relay. It satisfies
// notifications.MailSender.
type Sender struct {
	host     string
	port     string
	username string
	password string
}

// NewSender creates an SMTP sender. Username and password may be empty for
// relays that accept unauthenticated mail (local dev, mailhog).
func NewSender(host, port, username, password string) (*Sender, error) {
	if host == "" {
		return nil, errs.NewValueIsRequiredError("host")
	}
	if port == "" {
		return nil, errs.NewValueIsRequiredError("port")
	}

	return &Sender{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}, nil
}

// Send delivers the mail as a single HTML message.
func (s *Sender) Send(ctx context.Context, mail notifications.Mail) error {
	if mail.From == "" {
		return errs.NewValueIsRequiredError("mail.From")
	}
	if mail.To == "" {
		return errs.NewValueIsRequiredError("mail.To")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	msg := []byte("From: " + mail.From + "\r\n" +
		"To: " + mail.To + "\r\n" +
		"Subject: " + mail.Subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		mail.Body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(addr, auth, mail.From, []string{mail.To}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", mail.To, err)
	}

	return nil
}
