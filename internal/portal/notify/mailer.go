// Package notify renders and delivers the portal's transactional email.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
)

var ErrNotConfigured = errors.New("notify: mail driver not configured")

// Message is one rendered email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers a rendered message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config selects and configures a Mailer.
type Config struct {
	Driver   string // smtp, sendgrid or log
	From     string
	FromName string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPTLS      string // mandatory, opportunistic, implicit or none

	SendGridAPIKey string
	SendGridHost   string
}

// NewMailer builds the Mailer named by cfg.Driver.
func NewMailer(cfg Config) (Mailer, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "log":
		return LogMailer{}, nil
	case "smtp":
		return NewSMTPMailer(cfg)
	case "sendgrid":
		return NewSendGridMailer(cfg)
	default:
		return nil, fmt.Errorf("notify: unknown mail driver %q", cfg.Driver)
	}
}

// LogMailer writes messages to the request logger instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	slogx.FromContext(ctx).Info("email not sent, log driver",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Text),
	)
	return nil
}
