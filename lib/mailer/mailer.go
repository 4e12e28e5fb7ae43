// Package mailer sends transactional email over SMTP. When the SMTP
// environment is not configured the returned Mailer is a no-op that logs and
// skips every send, so the rest of the application can stay oblivious.
package mailer

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// Mailer sends a single email. Implementations must be safe for concurrent
// use.
type Mailer interface {
	// Enabled reports whether sends actually go out
	Enabled() bool
	// Send delivers one message; textBody is an optional plain-text
	// alternative and may be empty
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// NewFromEnv builds a Mailer from SMTP_HOST, SMTP_PORT, SMTP_USERNAME,
// SMTP_PASSWORD and MAIL_FROM. If any of them is missing a disabled mailer
// is returned.
func NewFromEnv() Mailer {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("MAIL_FROM")

	if host == "" || port == "" || username == "" || password == "" || from == "" {
		log.Println("Warning: SMTP credentials or MAIL_FROM not configured, email sending will be skipped")
		return disabledMailer{}
	}

	log.Println("✅ SMTP mailer initialized")
	return &smtpMailer{
		addr: host + ":" + port,
		auth: smtp.PlainAuth("", username, password, host),
		from: from,
	}
}

type smtpMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func (m *smtpMailer) Enabled() bool { return true }

func (m *smtpMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")

	if textBody != "" {
		const boundary = "eventra-alt-boundary"
		msg.WriteString("Content-Type: multipart/alternative; boundary=" + boundary + "\r\n\r\n")
		msg.WriteString("--" + boundary + "\r\n")
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		msg.WriteString(textBody + "\r\n")
		msg.WriteString("--" + boundary + "\r\n")
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		msg.WriteString(htmlBody + "\r\n")
		msg.WriteString("--" + boundary + "--\r\n")
	} else {
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		msg.WriteString(htmlBody + "\r\n")
	}

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

type disabledMailer struct{}

func (disabledMailer) Enabled() bool { return false }

func (disabledMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("Skipping email to %q with subject %q: mailer not configured", to, subject)
	return nil
}
