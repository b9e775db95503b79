package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultReplyEndpoint is the production reply API endpoint.
const DefaultReplyEndpoint = "https://api.line.me/v2/bot/message/reply"

// maxErrorBodyBytes caps how much of an error response body is kept for logs.
const maxErrorBodyBytes = 1024

// DeliveryError is a failed reply delivery. The status and a trimmed slice of
// the response body are kept for logging; reply tokens are single-use, so the
// caller cannot retry.
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("reply delivery failed: status %d: %s", e.StatusCode, e.Body)
}

// Client sends replies through the platform's reply API.
type Client struct {
	endpoint     string
	channelToken string
	httpClient   *http.Client
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithEndpoint overrides the reply API endpoint (used in tests).
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a reply client authenticated with a channel access token.
func NewClient(channelToken string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:     DefaultReplyEndpoint,
		channelToken: channelToken,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reply delivers one text message correlated to an inbound event by its reply token.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	payload, err := json.Marshal(replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: MessageTypeText, Text: text}},
	})
	if err != nil {
		return fmt.Errorf("encode reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &DeliveryError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	// Drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body)
	return nil
}
