package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when mutating a cart line or reading a
	// catalog entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidQuantity is returned for non-positive or non-numeric
	// quantity input.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrEmptyCart is returned when checkout is attempted with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnknownEvent is returned when callback data does not parse into
	// any known action.
	ErrUnknownEvent = errors.New("unknown event")
)

// PaymentError wraps an opaque failure from the payment provider. Checkout
// aborts on it; cart state is never touched.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment provider: %v", e.Err)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}
