package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/shopspring/decimal"

	"github.com/nguyentranbao-ct/shop-bot/internal/config"
	"github.com/nguyentranbao-ct/shop-bot/internal/models"
	"github.com/nguyentranbao-ct/shop-bot/internal/repo/mongodb"
	"github.com/nguyentranbao-ct/shop-bot/internal/repo/telegram"
	"github.com/nguyentranbao-ct/shop-bot/pkg/util"
)

type BotUsecase interface {
	HandleUpdate(ctx context.Context, update *telegram.Update) error
}

type botUsecase struct {
	categoryRepo mongodb.CategoryRepository
	productRepo  mongodb.ProductRepository
	orderRepo    mongodb.OrderRepository
	cart         CartUsecase
	checkout     CheckoutUsecase
	sessions     SessionManager
	tg           telegram.Client
	pageSize     int
}

func NewBotUsecase(
	conf *config.Config,
	categoryRepo mongodb.CategoryRepository,
	productRepo mongodb.ProductRepository,
	orderRepo mongodb.OrderRepository,
	cart CartUsecase,
	checkout CheckoutUsecase,
	sessions SessionManager,
	tg telegram.Client,
) BotUsecase {
	return &botUsecase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		cart:         cart,
		checkout:     checkout,
		sessions:     sessions,
		tg:           tg,
		pageSize:     conf.Telegram.PageSize,
	}
}

// HandleUpdate parses the raw update into a typed event once, then
// dispatches on the kind. User-level failures are answered in chat and do
// not propagate; only infrastructure failures bubble up to the transport.
func (uc *botUsecase) HandleUpdate(ctx context.Context, update *telegram.Update) error {
	ev, err := eventFromUpdate(update)
	if err != nil {
		if ev.CallbackID != "" {
			log.Infow(ctx, "unknown callback action", "error", err, "user_id", ev.UserID)
			return uc.tg.AnswerCallbackQuery(ctx, ev.CallbackID, "Unknown action.")
		}
		log.Infow(ctx, "ignoring unparseable update", "error", err)
		return nil
	}

	log.Infof(ctx, "handling %s event from user %d", ev.Kind, ev.UserID)

	switch ev.Kind {
	case models.EventStart:
		return uc.tg.SendMessage(ctx, ev.ChatID, "Welcome to the shop! Use /catalog to view our products.", nil)
	case models.EventShowCategories:
		return uc.handleCategories(ctx, ev)
	case models.EventShowProducts:
		return uc.handleProducts(ctx, ev)
	case models.EventShowCart:
		return uc.handleCart(ctx, ev)
	case models.EventShowOrders:
		return uc.handleOrders(ctx, ev)
	case models.EventBuyProduct:
		return uc.handleBuy(ctx, ev)
	case models.EventRemoveItem:
		return uc.handleRemove(ctx, ev)
	case models.EventChangeQuantity:
		return uc.handleChangeQuantity(ctx, ev)
	case models.EventCheckout:
		return uc.handleCheckout(ctx, ev)
	case models.EventFreeText:
		return uc.handleFreeText(ctx, ev)
	default:
		log.Infow(ctx, "dropping event with unknown kind", "user_id", ev.UserID)
		return nil
	}
}

func eventFromUpdate(update *telegram.Update) (models.Event, error) {
	if cb := update.CallbackQuery; cb != nil {
		ev, err := models.ParseCallbackData(cb.Data)
		ev.UserID = cb.From.ID
		ev.CallbackID = cb.ID
		ev.ChatID = cb.From.ID
		if cb.Message != nil {
			ev.ChatID = cb.Message.Chat.ID
			ev.MessageID = cb.Message.MessageID
		}
		return ev, err
	}

	if msg := update.Message; msg != nil && msg.From != nil {
		ev := models.Event{
			UserID: msg.From.ID,
			ChatID: msg.Chat.ID,
			Text:   strings.TrimSpace(msg.Text),
		}
		switch ev.Text {
		case "/start":
			ev.Kind = models.EventStart
		case "/catalog":
			ev.Kind = models.EventShowCategories
		case "/cart":
			ev.Kind = models.EventShowCart
		case "/orders":
			ev.Kind = models.EventShowOrders
		default:
			ev.Kind = models.EventFreeText
		}
		return ev, nil
	}

	return models.Event{}, fmt.Errorf("%w: update carries no message or callback", models.ErrUnknownEvent)
}

func (uc *botUsecase) handleCategories(ctx context.Context, ev models.Event) error {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	if len(categories) == 0 {
		return uc.reply(ctx, ev, "No categories available.", nil)
	}

	window, nav := Paginate(categories, ev.Page, uc.pageSize, models.CallbackCategories)

	rows := util.ConvertList(window, func(c models.Category) []telegram.InlineKeyboardButton {
		data := fmt.Sprintf("%s_%d", models.CallbackCategory, c.ID)
		return []telegram.InlineKeyboardButton{telegram.NewCallbackButton(c.Name, data)}
	})
	if navRow := navButtons(nav); navRow != nil {
		rows = append(rows, navRow)
	}

	names := util.ConvertList(window, func(c models.Category) string { return c.Name })
	text := fmt.Sprintf("Categories (page %d):\n\n%s", ev.Page+1, strings.Join(names, "\n"))

	return uc.reply(ctx, ev, text, &telegram.InlineKeyboardMarkup{InlineKeyboard: rows})
}

func (uc *botUsecase) handleProducts(ctx context.Context, ev models.Event) error {
	products, err := uc.productRepo.ListByCategory(ctx, ev.CategoryID)
	if err != nil {
		return fmt.Errorf("list products for category %d: %w", ev.CategoryID, err)
	}

	if len(products) == 0 {
		return uc.reply(ctx, ev, "No products available in this category.", nil)
	}

	navPrefix := fmt.Sprintf("%s_%d", models.CallbackCategory, ev.CategoryID)
	window, nav := Paginate(products, ev.Page, uc.pageSize, navPrefix)

	// One richly formatted message per product: imagery does not fit a
	// single batched text list, so navigation goes out separately after
	// the product cards.
	for _, product := range window {
		caption := fmt.Sprintf("%s - ₴%s\n\n%s", product.Name, product.Price.StringFixed(2), product.Description)
		keyboard := &telegram.InlineKeyboardMarkup{
			InlineKeyboard: [][]telegram.InlineKeyboardButton{{
				telegram.NewCallbackButton(
					fmt.Sprintf("Buy %s", product.Name),
					fmt.Sprintf("%s_%d", models.CallbackBuy, product.ID),
				),
			}},
		}
		if err := uc.tg.SendPhoto(ctx, ev.ChatID, product.ImageURL, caption, keyboard); err != nil {
			return fmt.Errorf("send product card %d: %w", product.ID, err)
		}
	}

	if navRow := navButtons(nav); navRow != nil {
		keyboard := &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{navRow}}
		return uc.tg.SendMessage(ctx, ev.ChatID, "Navigate through pages:", keyboard)
	}

	return nil
}

func (uc *botUsecase) handleCart(ctx context.Context, ev models.Event) error {
	items, err := uc.cart.ListForUser(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("list cart: %w", err)
	}

	if len(items) == 0 {
		return uc.tg.SendMessage(ctx, ev.ChatID, "Your cart is empty.", nil)
	}

	lines := make([]string, 0, len(items))
	rows := make([][]telegram.InlineKeyboardButton, 0, len(items)+1)
	for _, item := range items {
		lineTotal := item.UnitPrice.Decimal.Mul(decimal.NewFromInt(item.Quantity))
		lines = append(lines, fmt.Sprintf("%s - %d pcs - ₴%s", item.Name, item.Quantity, lineTotal.StringFixed(2)))
		rows = append(rows, []telegram.InlineKeyboardButton{
			telegram.NewCallbackButton(
				fmt.Sprintf("Remove %s", item.Name),
				fmt.Sprintf("%s_%d", models.CallbackRemove, item.ProductID),
			),
			telegram.NewCallbackButton(
				"Change Quantity",
				fmt.Sprintf("%s_%d", models.CallbackChange, item.ProductID),
			),
		})
	}
	rows = append(rows, []telegram.InlineKeyboardButton{
		telegram.NewCallbackButton("Buy", models.CallbackBuyCart),
	})

	total := CartTotal(items)
	text := fmt.Sprintf("Your cart:\n\n%s\n\nTotal: ₴%s", strings.Join(lines, "\n"), total.StringFixed(2))

	return uc.tg.SendMessage(ctx, ev.ChatID, text, &telegram.InlineKeyboardMarkup{InlineKeyboard: rows})
}

func (uc *botUsecase) handleOrders(ctx context.Context, ev models.Event) error {
	orders, err := uc.orderRepo.ListByUser(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}

	if len(orders) == 0 {
		return uc.tg.SendMessage(ctx, ev.ChatID, "You have no orders yet.", nil)
	}

	lines := util.ConvertList(orders, func(order *models.Order) string {
		return fmt.Sprintf("%s - ₴%s - %s", order.CreatedAt.Format("2006-01-02"), order.Total.StringFixed(2), order.Status)
	})
	text := fmt.Sprintf("Your orders:\n\n%s", strings.Join(lines, "\n"))

	return uc.tg.SendMessage(ctx, ev.ChatID, text, nil)
}

func (uc *botUsecase) handleBuy(ctx context.Context, ev models.Event) error {
	product, err := uc.cart.AddOrIncrement(ctx, ev.UserID, ev.ProductID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return uc.reply(ctx, ev, "This product is no longer available.", nil)
		}
		return fmt.Errorf("add to cart: %w", err)
	}

	if ev.CallbackID != "" {
		if err := uc.tg.AnswerCallbackQuery(ctx, ev.CallbackID, ""); err != nil {
			log.Errorw(ctx, "answer callback", "error", err)
		}
	}
	return uc.tg.SendMessage(ctx, ev.ChatID, fmt.Sprintf("%s has been added to your cart.", product.Name), nil)
}

func (uc *botUsecase) handleRemove(ctx context.Context, ev models.Event) error {
	if err := uc.cart.Remove(ctx, ev.UserID, ev.ProductID); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}

	if ev.CallbackID != "" {
		if err := uc.tg.AnswerCallbackQuery(ctx, ev.CallbackID, "Item removed from the cart."); err != nil {
			log.Errorw(ctx, "answer callback", "error", err)
		}
	}
	return uc.tg.SendMessage(ctx, ev.ChatID, "The item was removed from your cart.", nil)
}

func (uc *botUsecase) handleChangeQuantity(ctx context.Context, ev models.Event) error {
	product, err := uc.productRepo.GetByID(ctx, ev.ProductID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return uc.reply(ctx, ev, "This product is no longer available.", nil)
		}
		return fmt.Errorf("load product %d: %w", ev.ProductID, err)
	}

	uc.sessions.SetPendingEdit(ev.UserID, ev.ProductID)

	if ev.CallbackID != "" {
		if err := uc.tg.AnswerCallbackQuery(ctx, ev.CallbackID, ""); err != nil {
			log.Errorw(ctx, "answer callback", "error", err)
		}
	}
	prompt := fmt.Sprintf("Please enter the new quantity for product %s:", product.Name)
	return uc.tg.SendMessage(ctx, ev.ChatID, prompt, nil)
}

// handleFreeText resolves a free-text message against the pending quantity
// edit. The pending entry is consumed no matter what the text says; a typo
// means the user re-initiates the edit.
func (uc *botUsecase) handleFreeText(ctx context.Context, ev models.Event) error {
	productID, ok := uc.sessions.TakePendingEdit(ev.UserID)
	if !ok {
		return uc.tg.SendMessage(ctx, ev.ChatID, "I didn't understand that. Use /catalog to browse products or /cart to view your cart.", nil)
	}

	quantity, err := strconv.ParseInt(ev.Text, 10, 64)
	if err != nil || quantity < 1 {
		text := fmt.Sprintf("Please enter a valid positive number for the quantity. %q is not one.", ev.Text)
		return uc.tg.SendMessage(ctx, ev.ChatID, text, nil)
	}

	if err := uc.cart.SetQuantity(ctx, ev.UserID, productID, quantity); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return uc.tg.SendMessage(ctx, ev.ChatID, "There is nothing to update: that product is not in your cart.", nil)
		}
		if errors.Is(err, models.ErrInvalidQuantity) {
			return uc.tg.SendMessage(ctx, ev.ChatID, "Please enter a valid positive number for the quantity.", nil)
		}
		return fmt.Errorf("set quantity: %w", err)
	}

	name := fmt.Sprintf("product %d", productID)
	if product, err := uc.productRepo.GetByID(ctx, productID); err == nil {
		name = fmt.Sprintf("product '%s'", product.Name)
	}
	return uc.tg.SendMessage(ctx, ev.ChatID, fmt.Sprintf("Quantity for %s updated to %d pcs.", name, quantity), nil)
}

func (uc *botUsecase) handleCheckout(ctx context.Context, ev models.Event) error {
	result, err := uc.checkout.Checkout(ctx, ev.UserID)
	if err != nil {
		if errors.Is(err, models.ErrEmptyCart) {
			if ev.CallbackID != "" {
				return uc.tg.AnswerCallbackQuery(ctx, ev.CallbackID, "Your cart is empty.")
			}
			return uc.tg.SendMessage(ctx, ev.ChatID, "Your cart is empty.", nil)
		}
		var paymentErr *models.PaymentError
		if errors.As(err, &paymentErr) {
			log.Errorw(ctx, "payment provider failure", "error", err, "user_id", ev.UserID)
			return uc.reply(ctx, ev, "Checkout failed, please try again later.", nil)
		}
		return fmt.Errorf("checkout: %w", err)
	}

	if ev.CallbackID != "" {
		if err := uc.tg.AnswerCallbackQuery(ctx, ev.CallbackID, ""); err != nil {
			log.Errorw(ctx, "answer callback", "error", err)
		}
	}

	keyboard := &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{{
			telegram.NewURLButton("Pay Now", result.PaymentURL),
		}},
	}
	text := fmt.Sprintf("Click the button below to complete your purchase ₴%s:", result.Order.Total.StringFixed(2))
	return uc.tg.SendMessage(ctx, ev.ChatID, text, keyboard)
}

// reply edits the originating message when the event came from a callback,
// otherwise sends a new one. Telegram rejects edits that change nothing, so
// a failed edit falls back to a fresh message.
func (uc *botUsecase) reply(ctx context.Context, ev models.Event, text string, keyboard *telegram.InlineKeyboardMarkup) error {
	if ev.CallbackID != "" && ev.MessageID != 0 {
		if err := uc.tg.EditMessageText(ctx, ev.ChatID, ev.MessageID, text, keyboard); err == nil {
			return nil
		}
	}
	return uc.tg.SendMessage(ctx, ev.ChatID, text, keyboard)
}

func navButtons(nav PageNav) []telegram.InlineKeyboardButton {
	if nav.Empty() {
		return nil
	}
	var row []telegram.InlineKeyboardButton
	if nav.Prev != nil {
		row = append(row, telegram.NewCallbackButton("Previous", nav.Prev.Data))
	}
	if nav.Next != nil {
		row = append(row, telegram.NewCallbackButton("Next", nav.Next.Data))
	}
	return row
}
