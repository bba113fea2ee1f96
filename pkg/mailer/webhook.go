package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookMailer POSTs the message as JSON to an automation endpoint
// which handles the actual delivery.
type WebhookMailer struct {
	url    string
	from   string
	client *http.Client
}

type webhookPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

func NewWebhookMailer(url, from string) *WebhookMailer {
	return &WebhookMailer{
		url:  url,
		from: from,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (m *WebhookMailer) Send(ctx context.Context, msg *Message) error {
	payload := webhookPayload{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTMLBody,
		Text:    msg.TextBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call mail webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mail webhook returned status %d", resp.StatusCode)
	}
	return nil
}
