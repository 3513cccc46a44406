package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/you/assetsvc/domain"
	"github.com/you/assetsvc/internal/config"
)

// SMTPServiceImpl implements domain.EmailTransport
type SMTPServiceImpl struct {
	cfg    config.SMTP
	logger *slog.Logger
}

// NewSMTPService creates a new SMTP email transport
func NewSMTPService(cfg config.SMTP, logger *slog.Logger) domain.EmailTransport {
	return &SMTPServiceImpl{cfg: cfg, logger: logger}
}

// SendEmail implements domain.EmailTransport
func (s *SMTPServiceImpl) SendEmail(ctx context.Context, to, subject, body string) error {
	// If the relay is not configured, log instead of sending
	if s.cfg.Host == "" {
		s.logger.Info("[MOCK EMAIL]", "to", to, "subject", subject)
		return nil
	}

	msg, err := s.buildMessage(to, subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPServiceImpl) buildMessage(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}

func (s *SMTPServiceImpl) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}
