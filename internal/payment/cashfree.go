// Package payment talks to the Cashfree payment gateway over its REST API.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const apiVersion = "2023-08-01"

type Config struct {
	BaseURL   string
	AppID     string
	SecretKey string
	Mode      string // sandbox or production
	ReturnURL string
}

type Client struct {
	cfg  *Config
	http *http.Client
}

func NewClient(cfg *Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Mode is surfaced to the storefront so it can load the matching widget SDK.
func (c *Client) Mode() string {
	return c.cfg.Mode
}

type SessionRequest struct {
	OrderID       string
	Amount        float64
	CustomerName  string
	CustomerPhone string
}

// Session is what the checkout needs to hand the browser: the widget takes
// the session id, the hosted page fallback takes the URL.
type Session struct {
	GatewayOrderID   string
	PaymentSessionID string
	PaymentURL       string
}

type createOrderBody struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails customerDetails `json:"customer_details"`
	OrderMeta       orderMeta       `json:"order_meta"`
}

type customerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

type orderMeta struct {
	ReturnURL string `json:"return_url"`
}

type createOrderResponse struct {
	OrderID          string `json:"order_id"`
	PaymentSessionID string `json:"payment_session_id"`
	PaymentURL       string `json:"payment_url"`
	Payments         struct {
		URL string `json:"url"`
	} `json:"payments"`
}

// CreateSession creates a gateway order and returns its payment session.
// Single attempt; the caller surfaces failures to the user.
func (c *Client) CreateSession(ctx context.Context, req *SessionRequest) (*Session, error) {
	body := createOrderBody{
		OrderID:       req.OrderID,
		OrderAmount:   req.Amount,
		OrderCurrency: "INR",
		CustomerDetails: customerDetails{
			CustomerID:    req.CustomerPhone,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
		},
		OrderMeta: orderMeta{ReturnURL: c.cfg.ReturnURL},
	}

	var resp createOrderResponse
	if err := c.do(ctx, http.MethodPost, "/pg/orders", body, &resp); err != nil {
		return nil, err
	}

	url := resp.PaymentURL
	if url == "" {
		url = resp.Payments.URL
	}

	return &Session{
		GatewayOrderID:   resp.OrderID,
		PaymentSessionID: resp.PaymentSessionID,
		PaymentURL:       url,
	}, nil
}

type OrderState struct {
	Status     string
	Amount     float64
	PaymentURL string
}

type getOrderResponse struct {
	OrderStatus string  `json:"order_status"`
	OrderAmount float64 `json:"order_amount"`
	Payments    struct {
		URL string `json:"url"`
	} `json:"payments"`
}

// GetOrder fetches the gateway's view of an order, used for the single
// reconciliation poll on the confirmation page.
func (c *Client) GetOrder(ctx context.Context, gatewayOrderID string) (*OrderState, error) {
	var resp getOrderResponse
	if err := c.do(ctx, http.MethodGet, "/pg/orders/"+gatewayOrderID, nil, &resp); err != nil {
		return nil, err
	}
	return &OrderState{
		Status:     resp.OrderStatus,
		Amount:     resp.OrderAmount,
		PaymentURL: resp.Payments.URL,
	}, nil
}

// VerifyWebhookSignature checks Cashfree's x-webhook-signature header:
// base64(hmac-sha256(timestamp + rawBody, secret)).
func (c *Client) VerifyWebhookSignature(timestamp string, rawBody []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.cfg.SecretKey))
	mac.Write([]byte(timestamp))
	mac.Write(rawBody)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("x-client-id", c.cfg.AppID)
	req.Header.Set("x-client-secret", c.cfg.SecretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("cashfree %s %s: %s: %s", method, path, resp.Status, snippet)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
