package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart is returned when checkout runs against a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
)

// OutOfStockError aborts a checkout whose cart asks for more units of a
// product than are in stock. The whole checkout rolls back; no partial
// stock deduction survives.
type OutOfStockError struct {
	ProductName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s is out of stock", e.ProductName)
}
