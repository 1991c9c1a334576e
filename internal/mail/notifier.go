package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hris-account/internal/events"
)

// Notifier renders account mails and hands them to a Mailer.
type Notifier struct {
	mailer   Mailer
	from     string
	resetURL string
}

func NewNotifier(mailer Mailer, from, resetURL string) *Notifier {
	return &Notifier{mailer: mailer, from: from, resetURL: strings.TrimRight(resetURL, "/")}
}

func (n *Notifier) NotifyPasswordReset(ctx context.Context, to, name, token string, expiresAt time.Time) error {
	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", name)
	body.WriteString("We received a request to reset your password.\n")
	if n.resetURL != "" {
		fmt.Fprintf(&body, "Open %s/%s to choose a new one.\n", n.resetURL, token)
	} else {
		fmt.Fprintf(&body, "Your reset token: %s\n", token)
	}
	fmt.Fprintf(&body, "The link expires at %s.\n\n", expiresAt.UTC().Format(time.RFC1123))
	body.WriteString("If you did not ask for this, ignore this email.\n")

	return n.mailer.Send(ctx, &Email{
		Subject: "Password reset",
		Body:    body.String(),
		From:    n.from,
		To:      []string{to},
	})
}

func (n *Notifier) NotifyEmployeeCreated(ctx context.Context, event events.EmployeeCreatedEvent) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour employee account has been created. Sign in with %s.\n",
		event.Name, event.Email,
	)
	if event.Position != "" {
		body += fmt.Sprintf("Position: %s\n", event.Position)
	}

	return n.mailer.Send(ctx, &Email{
		Subject: "Welcome aboard",
		Body:    body,
		From:    n.from,
		To:      []string{event.Email},
	})
}
