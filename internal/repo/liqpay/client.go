package liqpay

import (
	"crypto/sha1" //nolint:gosec // LiqPay v3 mandates sha1 signatures
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/nguyentranbao-ct/shop-bot/internal/config"
)

const (
	checkoutURL    = "https://www.liqpay.ua/api/3/checkout"
	apiVersion     = 3
	maxDescription = 250
)

// Provider builds hosted-checkout URLs. The URL is self-contained: amount,
// description and order id are signed into it, the gateway confirms payment
// asynchronously on its own.
type Provider interface {
	CreatePaymentURL(amount decimal.Decimal, description, orderID string) (string, error)
}

type client struct {
	publicKey  string
	privateKey string
	currency   string
	sandbox    bool
}

type checkoutRequest struct {
	PublicKey   string `json:"public_key"`
	Version     int    `json:"version"`
	Action      string `json:"action"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	OrderID     string `json:"order_id"`
	Sandbox     int    `json:"sandbox,omitempty"`
}

func NewProvider(conf *config.Config) Provider {
	cfg := conf.LiqPay
	return &client{
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		currency:   cfg.Currency,
		sandbox:    cfg.Sandbox,
	}
}

func (c *client) CreatePaymentURL(amount decimal.Decimal, description, orderID string) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("amount must be positive, got %s", amount)
	}
	if utf8.RuneCountInString(description) > maxDescription {
		return "", fmt.Errorf("description exceeds %d characters", maxDescription)
	}
	if orderID == "" {
		return "", fmt.Errorf("order id is required")
	}

	req := checkoutRequest{
		PublicKey:   c.publicKey,
		Version:     apiVersion,
		Action:      "pay",
		Amount:      amount.StringFixed(2),
		Currency:    c.currency,
		Description: description,
		OrderID:     orderID,
	}
	if c.sandbox {
		req.Sandbox = 1
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal checkout request: %w", err)
	}

	data := base64.StdEncoding.EncodeToString(payload)
	signature := c.sign(data)

	query := url.Values{}
	query.Set("data", data)
	query.Set("signature", signature)

	return checkoutURL + "?" + query.Encode(), nil
}

// sign computes base64(sha1(private_key + data + private_key)) per the
// LiqPay v3 contract.
func (c *client) sign(data string) string {
	sum := sha1.Sum([]byte(c.privateKey + data + c.privateKey)) //nolint:gosec
	return base64.StdEncoding.EncodeToString(sum[:])
}
