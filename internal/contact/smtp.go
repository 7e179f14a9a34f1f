package contact

import (
	"context"
	"fmt"
	"net"
	"net/smtp"

	"go.uber.org/zap"
)

// Mailer delivers contact messages.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// SMTPConfig mirrors the SMTP_* environment settings.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	To       string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends through an authenticated SMTP relay.
type SMTPMailer struct {
	cfg    SMTPConfig
	logger *zap.Logger
	send   sendFunc
}

// NewSMTPMailer builds a mailer. Messages go to cfg.To, or to the SMTP user
// when no recipient is set.
func NewSMTPMailer(cfg SMTPConfig, logger *zap.Logger) *SMTPMailer {
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	return &SMTPMailer{cfg: cfg, logger: logger, send: smtp.SendMail}
}

// Configured reports whether credentials are present.
func (s *SMTPMailer) Configured() bool {
	return s.cfg.User != "" && s.cfg.Password != ""
}

func (s *SMTPMailer) Send(ctx context.Context, m Message) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	msg := Compose(s.cfg.User, s.cfg.To, m)

	if err := s.send(addr, auth, s.cfg.User, []string{s.cfg.To}, msg); err != nil {
		s.logger.Error("Sending contact email failed", zap.String("addr", addr), zap.Error(err))
		return fmt.Errorf("send contact email: %w", err)
	}
	s.logger.Info("Contact email sent", zap.String("from_name", m.Name))
	return nil
}
