package orders

import (
	"context"
	"strings"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

// Service answers order-history queries over completed orders only.
type Service struct {
	orders orderRepo
}

type orderRepo interface {
	ListCompleted(ctx context.Context, userID, filter string) ([]domain.Order, error)
	GetCompleted(ctx context.Context, userID, orderID string) (*domain.Order, error)
}

func New(orders orderrepo.Repository) *Service {
	return &Service{orders: orders}
}

// ListCompleted returns the user's completed orders, newest first. A
// non-empty filter keeps orders whose id or any line item's product
// name contains it, case-insensitively; each order appears once.
func (s *Service) ListCompleted(ctx context.Context, userID, filter string) ([]domain.Order, error) {
	return s.orders.ListCompleted(ctx, userID, strings.TrimSpace(filter))
}

// GetCompleted returns one of the user's completed orders.
func (s *Service) GetCompleted(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.orders.GetCompleted(ctx, userID, orderID)
}
