package models

import (
	"fmt"
	"strconv"
	"strings"
)

// EventKind is the tagged kind of an inbound user action. Callback data is
// parsed exactly once at the transport boundary; everything downstream
// switches on the kind instead of re-splitting strings.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventStart
	EventShowCategories
	EventShowProducts
	EventShowCart
	EventShowOrders
	EventBuyProduct
	EventRemoveItem
	EventChangeQuantity
	EventCheckout
	EventFreeText
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventShowCategories:
		return "show_categories"
	case EventShowProducts:
		return "show_products"
	case EventShowCart:
		return "show_cart"
	case EventShowOrders:
		return "show_orders"
	case EventBuyProduct:
		return "buy_product"
	case EventRemoveItem:
		return "remove_item"
	case EventChangeQuantity:
		return "change_quantity"
	case EventCheckout:
		return "checkout"
	case EventFreeText:
		return "free_text"
	default:
		return "unknown"
	}
}

// Event is one inbound user action, already bound to its user identity.
type Event struct {
	Kind       EventKind
	UserID     int64
	ChatID     int64
	MessageID  int64
	CallbackID string

	Page       int
	CategoryID int64
	ProductID  int64
	Text       string
}

// Callback data wire formats. These round-trip through the stateless
// callback channel, so they are a stable contract:
//
//	categories            category list, page 0
//	categories_<page>     category list navigation
//	category_<id>         product list for a category, page 0
//	category_<id>_<page>  product list navigation
//	buy_<id>              add product to cart
//	remove_<id>           remove product from cart
//	change_<id>           request a quantity edit for product
//	buy_cart              checkout
const (
	CallbackCategories = "categories"
	CallbackCategory   = "category"
	CallbackBuy        = "buy"
	CallbackRemove     = "remove"
	CallbackChange     = "change"
	CallbackBuyCart    = "buy_cart"
)

// ParseCallbackData turns raw callback data into a typed event. Only the
// kind and its parameters are filled in; identity fields are bound by the
// transport layer.
func ParseCallbackData(data string) (Event, error) {
	if data == CallbackBuyCart {
		return Event{Kind: EventCheckout}, nil
	}

	parts := strings.Split(data, "_")
	switch parts[0] {
	case CallbackCategories:
		page := 0
		if len(parts) > 1 {
			p, err := strconv.Atoi(parts[1])
			if err != nil || p < 0 {
				return Event{}, fmt.Errorf("%w: bad page in %q", ErrUnknownEvent, data)
			}
			page = p
		}
		return Event{Kind: EventShowCategories, Page: page}, nil

	case CallbackCategory:
		if len(parts) < 2 {
			return Event{}, fmt.Errorf("%w: missing category id in %q", ErrUnknownEvent, data)
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("%w: bad category id in %q", ErrUnknownEvent, data)
		}
		page := 0
		if len(parts) > 2 {
			p, err := strconv.Atoi(parts[2])
			if err != nil || p < 0 {
				return Event{}, fmt.Errorf("%w: bad page in %q", ErrUnknownEvent, data)
			}
			page = p
		}
		return Event{Kind: EventShowProducts, CategoryID: id, Page: page}, nil

	case CallbackBuy, CallbackRemove, CallbackChange:
		if len(parts) != 2 {
			return Event{}, fmt.Errorf("%w: bad action %q", ErrUnknownEvent, data)
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("%w: bad product id in %q", ErrUnknownEvent, data)
		}
		kind := EventBuyProduct
		switch parts[0] {
		case CallbackRemove:
			kind = EventRemoveItem
		case CallbackChange:
			kind = EventChangeQuantity
		}
		return Event{Kind: kind, ProductID: id}, nil
	}

	return Event{}, fmt.Errorf("%w: %q", ErrUnknownEvent, data)
}
