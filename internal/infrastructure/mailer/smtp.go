package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fsti-hub/internal/config"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

var ErrDisabled = errors.New("mailer disabled")

type Sender interface {
	SendWelcome(ctx context.Context, w Welcome) error
}

// SMTP sends mail over implicit TLS.
type SMTP struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

func NewSMTP(cfg config.SMTPConfig, logger *zap.Logger) *SMTP {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTP{cfg: cfg, logger: logger.With(zap.String("component", "mailer"))}
}

func (s *SMTP) SendWelcome(ctx context.Context, w Welcome) error {
	if !s.cfg.Enabled() {
		s.logger.Info("smtp not configured, welcome email skipped", zap.String("to", w.To), zap.String("role", w.Role))
		return ErrDisabled
	}

	msg, err := BuildWelcome(s.cfg.From, w)
	if err != nil {
		return err
	}

	client, err := s.client()
	if err != nil {
		return err
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	return nil
}

func (s *SMTP) client() (*mail.Client, error) {
	port := s.cfg.Port
	if port <= 0 {
		port = 465
	}
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTimeout(15 * time.Second),
	}
	if port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return mail.NewClient(s.cfg.Host, opts...)
}

// BuildWelcome renders the welcome message with an HTML body and a plain-text alternative.
func BuildWelcome(from string, w Welcome) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(w.Recipients()...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(w.Subject())
	if err := msg.SetBodyHTMLTemplate(welcomeHTML, w); err != nil {
		return nil, err
	}
	if err := msg.AddAlternativeTextTemplate(welcomeText, w); err != nil {
		return nil, err
	}
	return msg, nil
}
