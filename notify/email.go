// Copyright (c) 2025 BVK Chaitanya

package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pricemon/pricemon/config"
)

// EmailSender delivers alerts through an SMTP relay. SMTP_* environment
// variables take precedence over the configuration file, so passwords can
// stay out of config.json.
type EmailSender struct {
	server string
	port   int

	sender    string
	password  string
	recipient string
}

func NewEmailSender(c *config.EmailNotifications) (*EmailSender, error) {
	s := &EmailSender{
		server:    c.SMTPServer,
		port:      c.SMTPPort,
		sender:    c.SenderEmail,
		password:  c.SenderPassword,
		recipient: c.RecipientEmail,
	}
	if v := os.Getenv("SMTP_SERVER"); len(v) != 0 {
		s.server = v
	}
	if v := os.Getenv("SMTP_PORT"); len(v) != 0 {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("could not parse SMTP_PORT value %q: %w", v, err)
		}
		s.port = port
	}
	if v := os.Getenv("SMTP_SENDER_EMAIL"); len(v) != 0 {
		s.sender = v
	}
	if v := os.Getenv("SMTP_SENDER_PASSWORD"); len(v) != 0 {
		s.password = v
	}
	if v := os.Getenv("SMTP_RECIPIENT_EMAIL"); len(v) != 0 {
		s.recipient = v
	}
	if len(s.server) == 0 || s.port <= 0 {
		return nil, fmt.Errorf("smtp server and port are required: %w", os.ErrInvalid)
	}
	if len(s.sender) == 0 || len(s.recipient) == 0 {
		return nil, fmt.Errorf("sender and recipient addresses are required: %w", os.ErrInvalid)
	}
	return s, nil
}

// SendMessage sends the message as an email. The first line of the message
// becomes the subject.
func (s *EmailSender) SendMessage(ctx context.Context, at time.Time, msg string) error {
	subject, body, _ := strings.Cut(msg, "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.sender)
	fmt.Fprintf(&b, "To: %s\r\n", s.recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", at.Format(time.RFC1123Z))
	fmt.Fprintf(&b, "\r\n%s\r\n", body)

	addr := fmt.Sprintf("%s:%d", s.server, s.port)
	auth := smtp.PlainAuth("", s.sender, s.password, s.server)
	if err := smtp.SendMail(addr, auth, s.sender, []string{s.recipient}, []byte(b.String())); err != nil {
		return fmt.Errorf("could not send email through %s: %w", addr, err)
	}
	return nil
}
