package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/autofix-digital/template-base/config"
)

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(
			cfg.Mail.SMTPHost,
			cfg.Mail.SMTPPort,
			cfg.Mail.SMTPUser,
			cfg.Mail.SMTPPass,
		),
		from: cfg.Mail.From,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", msg.To)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/plain", msg.TextBody)
	mail.AddAlternative("text/html", msg.HTMLBody)

	if err := m.dialer.DialAndSend(mail); err != nil {
		return fmt.Errorf("failed to send mail via smtp: %w", err)
	}
	return nil
}
