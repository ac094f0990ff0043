package utils

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Notification struct {
	To      string
	Subject string
	Message string
}

type Mailer interface {
	Send(ctx context.Context, n Notification) error
}

// SMTPMailer delivers notifications through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, n Notification) error {
	if n.To == "" {
		return errors.New("recipient email address cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", n.To)
	msg.SetHeader("Subject", n.Subject)
	msg.SetBody("text/plain", n.Message)

	return errors.Wrapf(m.dialer.DialAndSend(msg), "send mail to %s", n.To)
}

// LogMailer writes notifications to the log instead of sending them.
type LogMailer struct {
	Logger *zap.Logger
}

func (m LogMailer) Send(_ context.Context, n Notification) error {
	m.Logger.Info("notification (mail relay not configured)",
		zap.String("to", n.To),
		zap.String("subject", n.Subject),
	)
	return nil
}
