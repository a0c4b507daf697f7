package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends operational notifications to users.
type Service interface {
	SendClinicVerified(ctx context.Context, to, clinicName string) error
}

// Config holds SMTP settings.
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService creates an SMTP-backed email service.
func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendClinicVerified(ctx context.Context, to, clinicName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your clinic has been verified")
	m.SetBody("text/plain", fmt.Sprintf(
		"Good news: %s has passed verification and is now visible on the platform.", clinicName))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// NoopService discards all notifications. Used when SMTP is not configured.
type NoopService struct{}

func (NoopService) SendClinicVerified(ctx context.Context, to, clinicName string) error {
	return nil
}
