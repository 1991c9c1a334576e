package mail

import (
	"context"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"
)

const sendTimeout = 10 * time.Second

type Email struct {
	Subject      string
	Body         string
	From         string
	To           []string
	Template     string
	TemplateVars map[string]any
}

type Mailer interface {
	Send(ctx context.Context, e *Email) error
}

type Mailgun struct {
	mg mailgun.Mailgun
}

func NewMailgun(domain, apiKey, apiBase string) *Mailgun {
	mg := mailgun.NewMailgun(domain, apiKey)
	if apiBase != "" {
		mg.SetAPIBase(apiBase)
	}
	return &Mailgun{mg: mg}
}

func (m *Mailgun) Send(ctx context.Context, e *Email) error {
	message := m.mg.NewMessage(e.From, e.Subject, e.Body, e.To...)
	if e.Template != "" {
		message.SetTemplate(e.Template)
		for k, v := range e.TemplateVars {
			if err := message.AddTemplateVariable(k, v); err != nil {
				return err
			}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, _, err := m.mg.Send(ctx, message)
	return err
}

// LogMailer stands in when no mail provider is configured. It records the
// recipient and subject only, never the body.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger ...*zap.Logger) *LogMailer {
	l := zap.L().Named("mail.log")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mail.log")
	}
	return &LogMailer{logger: l}
}

func (m *LogMailer) Send(_ context.Context, e *Email) error {
	m.logger.Info("mail not sent, no provider configured",
		zap.Strings("to", e.To),
		zap.String("subject", e.Subject),
	)
	return nil
}
