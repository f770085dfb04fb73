package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const defaultSendGridHost = "https://api.sendgrid.com"

// SendGridMailer posts to the SendGrid v3 mail send API.
type SendGridMailer struct {
	apiKey   string
	host     string
	from     string
	fromName string
}

func NewSendGridMailer(cfg Config) (*SendGridMailer, error) {
	if cfg.SendGridAPIKey == "" {
		return nil, fmt.Errorf("%w: SendGrid API key is empty", ErrNotConfigured)
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("%w: from address is empty", ErrNotConfigured)
	}
	host := cfg.SendGridHost
	if host == "" {
		host = defaultSendGridHost
	}
	return &SendGridMailer{
		apiKey:   cfg.SendGridAPIKey,
		host:     host,
		from:     cfg.From,
		fromName: cfg.FromName,
	}, nil
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	body := sgmail.NewSingleEmail(
		sgmail.NewEmail(m.fromName, m.from),
		msg.Subject,
		sgmail.NewEmail(msg.ToName, msg.To),
		msg.Text,
		msg.HTML,
	)

	req := sendgrid.GetRequest(m.apiKey, "/v3/mail/send", m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(body)

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
