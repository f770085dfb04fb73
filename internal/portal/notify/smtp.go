package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPMailer relays through an SMTP server.
type SMTPMailer struct {
	from     string
	fromName string
	opts     []mail.Option
	host     string
}

func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTP host is empty", ErrNotConfigured)
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("%w: from address is empty", ErrNotConfigured)
	}

	opts := []mail.Option{mail.WithTimeout(15 * time.Second)}
	if cfg.SMTPPort > 0 {
		opts = append(opts, mail.WithPort(cfg.SMTPPort))
	}

	switch strings.ToLower(cfg.SMTPTLS) {
	case "", "mandatory":
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	case "opportunistic":
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	case "implicit":
		opts = append(opts, mail.WithSSL())
	case "none":
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	default:
		return nil, fmt.Errorf("notify: unknown SMTP TLS mode %q", cfg.SMTPTLS)
	}

	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	return &SMTPMailer{
		from:     cfg.From,
		fromName: cfg.FromName,
		opts:     opts,
		host:     cfg.SMTPHost,
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out := mail.NewMsg()
	if err := m.setFrom(out); err != nil {
		return err
	}
	if err := out.AddToFormat(msg.ToName, msg.To); err != nil {
		return fmt.Errorf("smtp: to: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		out.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	client, err := mail.NewClient(m.host, m.opts...)
	if err != nil {
		return fmt.Errorf("smtp: client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("smtp: send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) setFrom(out *mail.Msg) error {
	var err error
	if m.fromName != "" {
		err = out.FromFormat(m.fromName, m.from)
	} else {
		err = out.From(m.from)
	}
	if err != nil {
		return fmt.Errorf("smtp: from: %w", err)
	}
	return nil
}
