package mailer

import (
	"context"

	"github.com/autofix-digital/template-base/pkg/circuit"
)

// ResilientMailer wraps a Mailer with a circuit breaker so a dead
// SMTP server or webhook endpoint fails fast instead of stalling
// every request that sends mail.
type ResilientMailer struct {
	inner   Mailer
	breaker *circuit.Breaker
}

func NewResilientMailer(inner Mailer, breaker *circuit.Breaker) *ResilientMailer {
	return &ResilientMailer{inner: inner, breaker: breaker}
}

func (m *ResilientMailer) Send(ctx context.Context, msg *Message) error {
	return m.breaker.Execute(func() error {
		return m.inner.Send(ctx, msg)
	})
}
