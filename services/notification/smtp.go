package notification

import (
	"context"
	"fmt"
	"time"

	"cowork/utils"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier sends plain-text mail through an SMTP relay.
type SMTPNotifier struct {
	cfg     SMTPConfig
	timeout time.Duration
}

func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host: %w", ErrNotConfigured)
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp sender address: %w", ErrNotConfigured)
	}
	return &SMTPNotifier{cfg: cfg, timeout: 15 * time.Second}, nil
}

func (n *SMTPNotifier) clientOptions() []mail.Option {
	opts := []mail.Option{mail.WithPort(n.cfg.Port), mail.WithTimeout(n.timeout)}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}
	switch {
	case n.cfg.Port == 465:
		opts = append(opts, mail.WithSSL())
	case n.cfg.Username != "":
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		// Unauthenticated relays (local mail catchers) often lack STARTTLS.
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	return opts
}

// Send delivers one message. The body is never logged.
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(n.cfg.Host, n.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		utils.GetLogger().Warn("Mail delivery failed", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("failed to deliver mail: %w", err)
	}

	utils.GetLogger().Debug("Mail delivered", zap.String("to", to), zap.String("subject", subject))
	return nil
}
