package usecase

import (
	"context"
	"errors"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/shopspring/decimal"

	"github.com/nguyentranbao-ct/shop-bot/internal/models"
	"github.com/nguyentranbao-ct/shop-bot/internal/repo/mongodb"
)

type CartUsecase interface {
	// AddOrIncrement puts one more unit of the product into the user's
	// cart and returns the product for the confirmation message.
	// models.ErrNotFound means the product is gone from the catalog.
	AddOrIncrement(ctx context.Context, userID, productID int64) (*models.Product, error)

	// SetQuantity overwrites the quantity of an existing line.
	// models.ErrNotFound when there is no line to update,
	// models.ErrInvalidQuantity for non-positive values.
	SetQuantity(ctx context.Context, userID, productID, quantity int64) error

	// Remove deletes the line if present; absent lines are a no-op.
	Remove(ctx context.Context, userID, productID int64) error

	// ListForUser joins cart lines with the live product snapshot. Unit
	// prices are read from the catalog on every call, so price changes
	// show up on the next view.
	ListForUser(ctx context.Context, userID int64) ([]models.CartItem, error)

	// TotalForUser sums quantity x current unit price over all lines,
	// rounded half-up to two digits at the final sum. Empty cart totals
	// exactly zero.
	TotalForUser(ctx context.Context, userID int64) (decimal.Decimal, error)
}

type cartUsecase struct {
	cartRepo    mongodb.CartRepository
	productRepo mongodb.ProductRepository
	sessions    SessionManager
}

func NewCartUsecase(
	cartRepo mongodb.CartRepository,
	productRepo mongodb.ProductRepository,
	sessions SessionManager,
) CartUsecase {
	return &cartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		sessions:    sessions,
	}
}

func (uc *cartUsecase) AddOrIncrement(ctx context.Context, userID, productID int64) (*models.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}

	err = uc.sessions.WithLock(userID, func() error {
		return uc.cartRepo.AddOrIncrement(ctx, userID, productID)
	})
	if err != nil {
		return nil, fmt.Errorf("add product %d to cart: %w", productID, err)
	}

	return product, nil
}

func (uc *cartUsecase) SetQuantity(ctx context.Context, userID, productID, quantity int64) error {
	// The boundary rejects bad input before calling here, but the store
	// re-validates as a guard.
	if quantity < 1 {
		return models.ErrInvalidQuantity
	}

	err := uc.sessions.WithLock(userID, func() error {
		return uc.cartRepo.SetQuantity(ctx, userID, productID, quantity)
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidQuantity) {
			return err
		}
		return fmt.Errorf("set quantity for product %d: %w", productID, err)
	}
	return nil
}

func (uc *cartUsecase) Remove(ctx context.Context, userID, productID int64) error {
	err := uc.sessions.WithLock(userID, func() error {
		return uc.cartRepo.Remove(ctx, userID, productID)
	})
	if err != nil {
		return fmt.Errorf("remove product %d from cart: %w", productID, err)
	}
	return nil
}

func (uc *cartUsecase) ListForUser(ctx context.Context, userID int64) ([]models.CartItem, error) {
	lines, err := uc.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}

	items := make([]models.CartItem, 0, len(lines))
	for _, line := range lines {
		product, err := uc.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				// Product was removed from the catalog after it was
				// carted; the line no longer renders.
				log.Infof(ctx, "skipping cart line for missing product %d (user %d)", line.ProductID, userID)
				continue
			}
			return nil, fmt.Errorf("load product %d: %w", line.ProductID, err)
		}

		items = append(items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
		})
	}

	return items, nil
}

func (uc *cartUsecase) TotalForUser(ctx context.Context, userID int64) (decimal.Decimal, error) {
	items, err := uc.ListForUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return CartTotal(items), nil
}

// CartTotal sums the items without intermediate rounding; only the final sum
// is rounded half-up to two digits.
func CartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total.Round(2)
}
