package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/nguyentranbao-ct/shop-bot/internal/models"
	"github.com/nguyentranbao-ct/shop-bot/internal/repo/telegram"
)

// In-memory stand-ins for the mongo repositories, honoring the same
// contracts (sorted listing, sentinel errors, upsert semantics).

type fakeCartRepo struct {
	mu    sync.Mutex
	lines []*models.CartLine
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{}
}

func (r *fakeCartRepo) find(userID, productID int64) *models.CartLine {
	for _, line := range r.lines {
		if line.UserID == userID && line.ProductID == productID {
			return line
		}
	}
	return nil
}

func (r *fakeCartRepo) AddOrIncrement(ctx context.Context, userID, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if line := r.find(userID, productID); line != nil {
		line.Quantity++
		line.UpdatedAt = time.Now()
		return nil
	}
	r.lines = append(r.lines, &models.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
		CreatedAt: time.Now(),
	})
	return nil
}

func (r *fakeCartRepo) SetQuantity(ctx context.Context, userID, productID, quantity int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if quantity < 1 {
		return models.ErrInvalidQuantity
	}
	line := r.find(userID, productID)
	if line == nil {
		return models.ErrNotFound
	}
	line.Quantity = quantity
	return nil
}

func (r *fakeCartRepo) Remove(ctx context.Context, userID, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, line := range r.lines {
		if line.UserID == userID && line.ProductID == productID {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeCartRepo) ListByUser(ctx context.Context, userID int64) ([]models.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CartLine
	for _, line := range r.lines {
		if line.UserID == userID {
			out = append(out, *line)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products []models.Product
}

func newFakeProductRepo(products ...models.Product) *fakeProductRepo {
	return &fakeProductRepo{products: products}
}

func (r *fakeProductRepo) set(p models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = p
			return
		}
	}
	r.products = append(r.products, p)
}

func (r *fakeProductRepo) remove(productID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == productID {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return
		}
	}
}

func (r *fakeProductRepo) ListByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, productID int64) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == productID {
			product := p
			return &product, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeCategoryRepo struct {
	categories []models.Category
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	return r.categories, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []*models.Order
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.CreatedAt = time.Now()
	r.orders = append(r.orders, order)
	return nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// sentMessage records one outbound transport call.
type sentMessage struct {
	Method   string
	ChatID   int64
	Text     string
	Keyboard *telegram.InlineKeyboardMarkup
}

type fakeTelegramClient struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (c *fakeTelegramClient) record(m sentMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, m)
}

func (c *fakeTelegramClient) SendMessage(ctx context.Context, chatID int64, text string, kb *telegram.InlineKeyboardMarkup) error {
	c.record(sentMessage{Method: "sendMessage", ChatID: chatID, Text: text, Keyboard: kb})
	return nil
}

func (c *fakeTelegramClient) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, kb *telegram.InlineKeyboardMarkup) error {
	c.record(sentMessage{Method: "sendPhoto", ChatID: chatID, Text: caption, Keyboard: kb})
	return nil
}

func (c *fakeTelegramClient) EditMessageText(ctx context.Context, chatID, messageID int64, text string, kb *telegram.InlineKeyboardMarkup) error {
	c.record(sentMessage{Method: "editMessageText", ChatID: chatID, Text: text, Keyboard: kb})
	return nil
}

func (c *fakeTelegramClient) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	c.record(sentMessage{Method: "answerCallbackQuery", Text: text})
	return nil
}

func (c *fakeTelegramClient) lastMessage() sentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return sentMessage{}
	}
	return c.sent[len(c.sent)-1]
}
