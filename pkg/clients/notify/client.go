package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/mixlog/internal/config"
)

// Client delivers plain-text notifications.
type Client interface {
	SendText(ctx context.Context, req SendTextRequest) error
}

// WebhookClient is a resty-backed implementation of Client posting to an incoming webhook
// (Slack, Mattermost, Google Chat and similar accept the same "text" payload).
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		url:        cfg.WebhookURL,
	}
}

// SendTextRequest represents a simplified text notification.
type SendTextRequest struct {
	Title string
	Body  string
}

type webhookPayload struct {
	Text string `json:"text"`
}

// apiError represents a JSON error body returned by the webhook receiver.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *WebhookClient) SendText(ctx context.Context, req SendTextRequest) error {
	text := req.Body
	if req.Title != "" {
		text = req.Title + "\n" + req.Body
	}

	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(webhookPayload{Text: text}).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		if message == "" {
			message = resp.String()
		}
		return fmt.Errorf("notification webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
