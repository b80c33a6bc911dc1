// Package relay implements the widget side of the exchange protocol: a
// Completer that hands the full conversation to the relay server's
// /api/chat endpoint and returns the first choice.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/embedchat/embedchat/domain"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient overrides the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken attaches a widget session token to every request.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	body, err := json.Marshal(domain.ChatRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp domain.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Error != "" {
			return "", fmt.Errorf("relay returned %d: %s", resp.StatusCode, errResp.Error)
		}
		return "", fmt.Errorf("relay returned %d", resp.StatusCode)
	}

	var chatResp domain.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", domain.ErrNoChoices
	}

	return chatResp.Choices[0].Message.Content, nil
}
