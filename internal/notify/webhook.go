package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Webhook posts chat lines to a Slack or Discord compatible incoming webhook.
type Webhook struct {
	URL    string
	Client *http.Client
}

// NewWebhook returns nil when url is empty so callers can skip the sink.
func NewWebhook(url string) *Webhook {
	if url == "" {
		return nil
	}
	return &Webhook{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// webhookPayload renders the line under both the Slack ("text") and
// Discord ("content") keys and nests the raw message under "check".
type webhookPayload struct {
	Text    string  `json:"text"`
	Content string  `json:"content"`
	Check   Message `json:"check"`
}

func (w *Webhook) Publish(ctx context.Context, m Message) error {
	if w == nil || w.URL == "" {
		return errors.New("webhook disabled")
	}
	line := "*" + m.Title + "*\n" + m.Text
	body, err := json.Marshal(webhookPayload{Text: line, Content: line, Check: m})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("webhook non-2xx: %d", resp.StatusCode)
	}
	return nil
}
