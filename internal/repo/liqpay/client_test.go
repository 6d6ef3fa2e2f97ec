package liqpay

import (
	"crypto/sha1" //nolint:gosec
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/shop-bot/internal/config"
)

func newTestProvider(sandbox bool) Provider {
	conf := &config.Config{}
	conf.LiqPay.PublicKey = "pub-key"
	conf.LiqPay.PrivateKey = "priv-key"
	conf.LiqPay.Currency = "UAH"
	conf.LiqPay.Sandbox = sandbox
	return NewProvider(conf)
}

func TestCreatePaymentURL(t *testing.T) {
	provider := newTestProvider(true)

	raw, err := provider.CreatePaymentURL(decimal.RequireFromString("25.5"), "A (x2), B (x1)", "order_7_abc")
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "www.liqpay.ua", parsed.Host)
	assert.Equal(t, "/api/3/checkout", parsed.Path)

	data := parsed.Query().Get("data")
	signature := parsed.Query().Get("signature")
	require.NotEmpty(t, data)
	require.NotEmpty(t, signature)

	payload, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)

	var req checkoutRequest
	require.NoError(t, json.Unmarshal(payload, &req))
	assert.Equal(t, "pub-key", req.PublicKey)
	assert.Equal(t, 3, req.Version)
	assert.Equal(t, "pay", req.Action)
	assert.Equal(t, "25.50", req.Amount)
	assert.Equal(t, "UAH", req.Currency)
	assert.Equal(t, "A (x2), B (x1)", req.Description)
	assert.Equal(t, "order_7_abc", req.OrderID)
	assert.Equal(t, 1, req.Sandbox)

	sum := sha1.Sum([]byte("priv-key" + data + "priv-key")) //nolint:gosec
	assert.Equal(t, base64.StdEncoding.EncodeToString(sum[:]), signature)
}

func TestCreatePaymentURLProduction(t *testing.T) {
	provider := newTestProvider(false)

	raw, err := provider.CreatePaymentURL(decimal.NewFromInt(10), "one item", "order_1_x")
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	payload, err := base64.StdEncoding.DecodeString(parsed.Query().Get("data"))
	require.NoError(t, err)

	// The sandbox flag must be absent entirely, not sent as 0.
	assert.NotContains(t, string(payload), "sandbox")
}

func TestCreatePaymentURLValidation(t *testing.T) {
	provider := newTestProvider(true)

	_, err := provider.CreatePaymentURL(decimal.Zero, "desc", "order_1_x")
	assert.ErrorContains(t, err, "positive")

	_, err = provider.CreatePaymentURL(decimal.NewFromInt(-5), "desc", "order_1_x")
	assert.ErrorContains(t, err, "positive")

	_, err = provider.CreatePaymentURL(decimal.NewFromInt(10), strings.Repeat("x", maxDescription+1), "order_1_x")
	assert.ErrorContains(t, err, "description")

	// The limit counts characters: 250 Cyrillic characters are 500 bytes
	// and still fit.
	_, err = provider.CreatePaymentURL(decimal.NewFromInt(10), strings.Repeat("К", maxDescription), "order_1_x")
	assert.NoError(t, err)

	_, err = provider.CreatePaymentURL(decimal.NewFromInt(10), strings.Repeat("К", maxDescription+1), "order_1_x")
	assert.ErrorContains(t, err, "description")

	_, err = provider.CreatePaymentURL(decimal.NewFromInt(10), "desc", "")
	assert.ErrorContains(t, err, "order id")
}
