package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nguyentranbao-ct/shop-bot/internal/config"
	"github.com/nguyentranbao-ct/shop-bot/pkg/util"
)

// Client is the outbound half of the chat transport. All rendering decisions
// live in the usecase layer; this client only ships payloads to the Bot API.
type Client interface {
	SendMessage(ctx context.Context, chatID int64, text string, keyboard *InlineKeyboardMarkup) error
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, keyboard *InlineKeyboardMarkup) error
	EditMessageText(ctx context.Context, chatID, messageID int64, text string, keyboard *InlineKeyboardMarkup) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
}

type client struct {
	http    *resty.Client
	baseURL string
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

func NewClient(conf *config.Config) Client {
	cfg := conf.Telegram
	return &client{
		http:    util.NewRestyClient(),
		baseURL: fmt.Sprintf("%s/bot%s", cfg.BaseURL, cfg.Token),
	}
}

func (c *client) SendMessage(ctx context.Context, chatID int64, text string, keyboard *InlineKeyboardMarkup) error {
	body := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if keyboard != nil {
		body["reply_markup"] = keyboard
	}
	return c.call(ctx, "sendMessage", body)
}

func (c *client) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, keyboard *InlineKeyboardMarkup) error {
	body := map[string]any{
		"chat_id": chatID,
		"photo":   photoURL,
		"caption": caption,
	}
	if keyboard != nil {
		body["reply_markup"] = keyboard
	}
	return c.call(ctx, "sendPhoto", body)
}

func (c *client) EditMessageText(ctx context.Context, chatID, messageID int64, text string, keyboard *InlineKeyboardMarkup) error {
	body := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}
	if keyboard != nil {
		body["reply_markup"] = keyboard
	}
	return c.call(ctx, "editMessageText", body)
}

func (c *client) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	body := map[string]any{
		"callback_query_id": callbackID,
	}
	if text != "" {
		body["text"] = text
	}
	return c.call(ctx, "answerCallbackQuery", body)
}

func (c *client) call(ctx context.Context, method string, body map[string]any) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var result apiResponse
	resp, err := c.http.R().
		SetContext(timeoutCtx).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("%s/%s", c.baseURL, method))
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}

	if resp.IsError() || !result.OK {
		return fmt.Errorf("telegram %s: status %d: %s", method, resp.StatusCode(), result.Description)
	}

	return nil
}
