package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
)

// Outcome is the best effort result of a send. A failed email never fails
// the operation that triggered it; the outcome travels back to the caller
// instead.
type Outcome struct {
	Sent  bool
	Error string
}

func failed(err error) Outcome { return Outcome{Error: err.Error()} }

// SendError describes a delivery that did not go out.
type SendError struct {
	Template string
	To       string
	Err      error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send %s to %s: %v", e.Template, e.To, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// Recorder observes send results, typically for metrics.
type Recorder interface {
	EmailResult(template string, err error)
}

// Notifier renders the portal's email templates and hands them to a Mailer.
type Notifier struct {
	Mailer    Mailer
	Product   string
	Support   string // reply-to shown in the footer, optional
	LoginURL  string
	ReviewURL string
	Recorder  Recorder
}

func (n *Notifier) send(ctx context.Context, tmpl, to, toName string, data any) Outcome {
	l := slogx.FromContext(ctx)

	err := n.deliver(ctx, tmpl, to, toName, data)
	if n.Recorder != nil {
		n.Recorder.EmailResult(tmpl, err)
	}
	if err != nil {
		sendErr := &SendError{Template: tmpl, To: to, Err: err}
		l.Warn("email delivery failed",
			slog.String("template", tmpl),
			slog.String("to", to),
			slogx.Err(err),
		)
		return failed(sendErr)
	}

	l.Info("email sent", slog.String("template", tmpl), slog.String("to", to))
	return Outcome{Sent: true}
}

func (n *Notifier) deliver(ctx context.Context, tmpl, to, toName string, data any) error {
	if n.Mailer == nil {
		return ErrNotConfigured
	}
	text, html, err := render(tmpl, data)
	if err != nil {
		return err
	}
	return n.Mailer.Send(ctx, Message{
		To:      to,
		ToName:  toName,
		Subject: fmt.Sprintf(subjects[tmpl], n.Product),
		Text:    text,
		HTML:    html,
	})
}

// AdminInvitation sends the setup link to a newly invited admin.
func (n *Notifier) AdminInvitation(ctx context.Context, to, name, setupLink string, expiresAt time.Time) Outcome {
	return n.send(ctx, tmplAdminInvitation, to, name, map[string]any{
		"Name":      name,
		"Product":   n.Product,
		"Support":   n.Support,
		"SetupLink": setupLink,
		"ExpiresAt": expiresAt,
	})
}

// MemberInvitation sends the setup link to a member created by an admin.
func (n *Notifier) MemberInvitation(
	ctx context.Context,
	to, name, company, setupLink string,
	expiresAt time.Time,
	approved bool,
) Outcome {
	return n.send(ctx, tmplMemberInvitation, to, name, map[string]any{
		"Name":      name,
		"Company":   company,
		"Product":   n.Product,
		"Support":   n.Support,
		"SetupLink": setupLink,
		"ExpiresAt": expiresAt,
		"Approved":  approved,
	})
}

// MemberApproved tells a member they can sign in.
func (n *Notifier) MemberApproved(ctx context.Context, to, name string) Outcome {
	return n.send(ctx, tmplMemberApproved, to, name, map[string]any{
		"Name":     name,
		"Product":  n.Product,
		"LoginURL": n.LoginURL,
	})
}

// RegistrationReceived alerts each admin in to about a pending member. The
// outcome is Sent only if every admin was reached.
func (n *Notifier) RegistrationReceived(ctx context.Context, to []string, name, email, company string) Outcome {
	if len(to) == 0 {
		return Outcome{Error: "no active admins to notify"}
	}
	data := map[string]any{
		"Name":      name,
		"Email":     email,
		"Company":   company,
		"Product":   n.Product,
		"ReviewURL": n.ReviewURL,
	}
	out := Outcome{Sent: true}
	for _, addr := range to {
		if o := n.send(ctx, tmplRegistrationReceived, addr, "", data); !o.Sent {
			out = o
		}
	}
	return out
}
