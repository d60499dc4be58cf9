// Package whatsapp sends messages through the WhatsApp Cloud API.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Config struct {
	BaseURL       string
	APIVersion    string
	PhoneNumberID string
	AccessToken   string
}

type Client struct {
	cfg  *Config
	http *http.Client
}

func NewClient(cfg *Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type message struct {
	MessagingProduct string    `json:"messaging_product"`
	To               string    `json:"to"`
	Type             string    `json:"type"`
	Text             *text     `json:"text,omitempty"`
	Template         *template `json:"template,omitempty"`
}

type text struct {
	Body string `json:"body"`
}

type template struct {
	Name       string      `json:"name"`
	Language   language    `json:"language"`
	Components []component `json:"components,omitempty"`
}

type language struct {
	Code string `json:"code"`
}

type component struct {
	Type       string      `json:"type"`
	Parameters []parameter `json:"parameters"`
}

type parameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendText sends a free-text message. Only works inside an open 24h session
// window; marketing blasts should prefer templates.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	return c.send(ctx, &message{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             &text{Body: body},
	})
}

// SendTemplate sends a pre-approved template. bodyParams must match the
// template's placeholder count or the API rejects the send.
func (c *Client) SendTemplate(ctx context.Context, to, name, langCode string, bodyParams []string) error {
	tpl := &template{
		Name:     name,
		Language: language{Code: langCode},
	}
	if len(bodyParams) > 0 {
		params := make([]parameter, len(bodyParams))
		for i, p := range bodyParams {
			params[i] = parameter{Type: "text", Text: p}
		}
		tpl.Components = []component{{Type: "body", Parameters: params}}
	}

	return c.send(ctx, &message{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template:         tpl,
	})
}

func (c *Client) send(ctx context.Context, msg *message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.cfg.BaseURL, c.cfg.APIVersion, c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp send to %s: %s: %s", msg.To, resp.Status, snippet)
	}
	return nil
}
