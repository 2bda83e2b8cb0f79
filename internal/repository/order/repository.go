package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// GetOrCreateOpen returns the user's open order, creating one when
	// none exists. Concurrent calls for the same user resolve to the
	// same row via the partial unique index on (user_id) WHERE NOT
	// complete.
	GetOrCreateOpen(ctx context.Context, userID string) (*domain.Order, error)

	// GetOpen returns the user's open order or domain.ErrNotFound.
	GetOpen(ctx context.Context, userID string) (*domain.Order, error)

	// AddItem upserts the line item for the product and increments its
	// quantity.
	AddItem(ctx context.Context, orderID, productID string, quantity int) error

	// RemoveItem decrements the line item's quantity by one, deleting
	// the row when it would reach zero. Missing lines are a no-op.
	RemoveItem(ctx context.Context, orderID, productID string) error

	// Checkout atomically decrements stock for every line item and
	// marks the order complete with the given transaction id. Any item
	// short on stock aborts the whole transaction with
	// *domain.OutOfStockError; an itemless order yields
	// domain.ErrEmptyCart. Nothing is persisted on failure.
	Checkout(ctx context.Context, orderID, transactionID string) error

	// ListCompleted returns the user's completed orders, newest first.
	// A non-empty filter keeps orders whose id or any line item's
	// product name contains it, case-insensitively.
	ListCompleted(ctx context.Context, userID, filter string) ([]domain.Order, error)

	// GetCompleted returns one of the user's completed orders or
	// domain.ErrNotFound.
	GetCompleted(ctx context.Context, userID, orderID string) (*domain.Order, error)
}
