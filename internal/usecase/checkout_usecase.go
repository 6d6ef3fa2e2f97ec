package usecase

import (
	"context"
	"fmt"
	"strings"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/google/uuid"

	"github.com/nguyentranbao-ct/shop-bot/internal/kafka"
	"github.com/nguyentranbao-ct/shop-bot/internal/models"
	"github.com/nguyentranbao-ct/shop-bot/internal/repo/liqpay"
	"github.com/nguyentranbao-ct/shop-bot/internal/repo/mongodb"
)

// maxDescriptionLen is the payment provider's description limit. Exceeding
// it is a hard contract violation, so descriptions are cut to a 247-character
// prefix plus an ellipsis.
const maxDescriptionLen = 250

type CheckoutResult struct {
	Order      models.OrderDescriptor
	PaymentURL string
}

type CheckoutUsecase interface {
	// Checkout converts the user's cart into a priced order descriptor,
	// persists the order, and hands the descriptor to the payment
	// provider. models.ErrEmptyCart when there is nothing to buy; a
	// *models.PaymentError aborts checkout with the cart untouched.
	Checkout(ctx context.Context, userID int64) (*CheckoutResult, error)
}

type checkoutUsecase struct {
	cart      CartUsecase
	orderRepo mongodb.OrderRepository
	payment   liqpay.Provider
	events    kafka.OrderEventPublisher
}

func NewCheckoutUsecase(
	cart CartUsecase,
	orderRepo mongodb.OrderRepository,
	payment liqpay.Provider,
	events kafka.OrderEventPublisher,
) CheckoutUsecase {
	return &checkoutUsecase{
		cart:      cart,
		orderRepo: orderRepo,
		payment:   payment,
		events:    events,
	}
}

func (uc *checkoutUsecase) Checkout(ctx context.Context, userID int64) (*CheckoutResult, error) {
	items, err := uc.cart.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	if len(items) == 0 {
		return nil, models.ErrEmptyCart
	}

	descriptor := models.OrderDescriptor{
		UserID:      userID,
		OrderID:     newOrderID(userID),
		Total:       CartTotal(items),
		Description: buildDescription(items),
	}

	order := &models.Order{
		OrderID:     descriptor.OrderID,
		UserID:      userID,
		Total:       models.NewMoney(descriptor.Total),
		Description: descriptor.Description,
		Status:      models.OrderStatusPending,
		Items:       make([]models.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order %s: %w", descriptor.OrderID, err)
	}

	paymentURL, err := uc.payment.CreatePaymentURL(descriptor.Total, descriptor.Description, descriptor.OrderID)
	if err != nil {
		return nil, &models.PaymentError{Err: err}
	}

	// Order events are best effort; a broker outage must not block the
	// user's payment link.
	if err := uc.events.PublishOrderCreated(ctx, order); err != nil {
		log.Errorw(ctx, "publish order created event", "error", err, "order_id", descriptor.OrderID)
	}

	log.Infof(ctx, "checkout assembled order %s for user %d, total %s", descriptor.OrderID, userID, descriptor.Total.StringFixed(2))

	return &CheckoutResult{
		Order:      descriptor,
		PaymentURL: paymentURL,
	}, nil
}

// newOrderID composes the user id with a random component so rapid repeated
// checkouts by the same user never collide.
func newOrderID(userID int64) string {
	return fmt.Sprintf("order_%d_%s", userID, uuid.NewString())
}

// buildDescription joins "{name} (x{qty})" in listing order, truncated to
// the provider's 250-character limit. The limit counts characters, not
// bytes: Cyrillic catalogs would otherwise get cut early and mid-rune.
func buildDescription(items []models.CartItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (x%d)", item.Name, item.Quantity))
	}

	description := strings.Join(parts, ", ")
	if runes := []rune(description); len(runes) > maxDescriptionLen {
		description = string(runes[:maxDescriptionLen-3]) + "..."
	}
	return description
}
