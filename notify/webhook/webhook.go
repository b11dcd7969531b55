// Package webhook implements notify.Sender against the chat platform relay,
// a small webhook endpoint the bot glue exposes for outbound messages.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/divebot/divequest/config"
	"github.com/divebot/divequest/notify"
)

// Client posts messages to the relay endpoint.
type Client struct {
	serverURL  string
	token      string
	httpClient *http.Client
}

// Message is the relay payload. Kind is "dm" or "channel"; Target is the
// username or channel name respectively.
type Message struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Text   string `json:"text"`
}

// New creates a new relay client.
func New(cfg *config.RelayConfig) *Client {
	if cfg.URL != "" {
		if _, err := url.Parse(cfg.URL); err != nil {
			log.Errorf("Invalid relay URL: %v", err)
		}
	}

	return &Client{
		serverURL: cfg.URL,
		token:     cfg.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendDirectMessage delivers text to a single user. A relay response of 403
// means the recipient's privacy settings reject DMs and maps to
// notify.ErrForbidden.
func (c *Client) SendDirectMessage(ctx context.Context, username, text string) error {
	return c.send(ctx, Message{Kind: "dm", Target: username, Text: text})
}

// PostToChannel delivers text to a channel.
func (c *Client) PostToChannel(ctx context.Context, channel, text string) error {
	return c.send(ctx, Message{Kind: "channel", Target: channel, Text: text})
}

func (c *Client) send(ctx context.Context, msg Message) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.serverURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusForbidden {
		return notify.ErrForbidden
	}
	if resp.StatusCode >= 400 {
		var errorMsg strings.Builder
		if resp.Body != nil {
			buf := make([]byte, 256)
			if n, _ := resp.Body.Read(buf); n > 0 {
				errorMsg.WriteString(": ")
				errorMsg.Write(buf[:n])
			}
		}
		return fmt.Errorf("relay returned status %d%s", resp.StatusCode, errorMsg.String())
	}

	log.Debug("Sent relay message", "kind", msg.Kind, "target", msg.Target)
	return nil
}
