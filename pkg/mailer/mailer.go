// Package mailer delivers transactional email through either a direct
// SMTP connection or an outbound webhook (e.g. an n8n workflow).
package mailer

import (
	"context"
	"fmt"

	"github.com/autofix-digital/template-base/config"
	"github.com/autofix-digital/template-base/pkg/circuit"
	"github.com/autofix-digital/template-base/pkg/logger"
)

// Message is a rendered email ready for delivery.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer sends a single message. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// NewFromConfig selects the transport named by MAIL_PROVIDER and
// wraps it in a circuit breaker.
func NewFromConfig(cfg *config.Config) (Mailer, error) {
	var inner Mailer
	switch cfg.Mail.Provider {
	case "smtp":
		inner = NewSMTPMailer(cfg)
	case "webhook":
		if cfg.Mail.WebhookURL == "" {
			return nil, fmt.Errorf("mail provider is webhook but MAIL_WEBHOOK_URL is empty")
		}
		inner = NewWebhookMailer(cfg.Mail.WebhookURL, cfg.Mail.From)
	default:
		return nil, fmt.Errorf("unknown mail provider: %q", cfg.Mail.Provider)
	}

	breaker := circuit.NewBreaker("mail:"+cfg.Mail.Provider, circuit.DefaultConfig(), logger.GetLogger())
	return NewResilientMailer(inner, breaker), nil
}
