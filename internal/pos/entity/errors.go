package entity

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is reported before any transaction opens.
var ErrEmptyCart = errors.New("cart is empty")

// ErrDuplicateCheckout means the idempotency key was already used.
var ErrDuplicateCheckout = errors.New("duplicate checkout request")

// ErrOrderNotFound means no order exists with the requested id.
var ErrOrderNotFound = errors.New("order not found")

// InvalidItemError means the cart references a menu item that does not
// exist. The whole checkout is rolled back.
type InvalidItemError struct {
	ItemID int
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("item ID %d invalid", e.ItemID)
}

// InsufficientStockError means a cart line asked for more than is in
// stock. The whole checkout is rolled back.
type InsufficientStockError struct {
	ItemName  string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock error: only %d left for %s", e.Available, e.ItemName)
}
