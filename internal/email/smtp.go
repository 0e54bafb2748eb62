package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/smarthealth/booking-api/internal/config"
)

const senderName = "Smart Health"

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService builds an SMTP-backed sender from config. EMAIL_SECURE
// selects implicit TLS (port 465 style); otherwise STARTTLS is negotiated.
func NewSMTPService(cfg config.EmailConfig) Service {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	dialer.SSL = cfg.Secure

	from := cfg.From
	if from == "" {
		from = cfg.User
	}

	return &smtpService{
		dialer: dialer,
		from:   from,
	}
}

func (s *smtpService) Send(_ context.Context, msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, senderName))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	return nil
}
