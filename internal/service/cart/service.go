package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

// Service maintains the single open order per user. Stock is not
// checked here; it is only enforced at checkout.
type Service struct {
	orders   orderRepo
	products productRepo
}

type orderRepo interface {
	GetOrCreateOpen(ctx context.Context, userID string) (*domain.Order, error)
	GetOpen(ctx context.Context, userID string) (*domain.Order, error)
	AddItem(ctx context.Context, orderID, productID string, quantity int) error
	RemoveItem(ctx context.Context, orderID, productID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(orders orderrepo.Repository, products productRepo) *Service {
	return &Service{orders: orders, products: products}
}

// GetCart returns the user's open order, creating one lazily.
func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Order, error) {
	return s.orders.GetOrCreateOpen(ctx, userID)
}

// AddItem resolves the product, gets or creates the cart and increments
// the product's line item by quantity. Returns the refreshed cart.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Order, error) {
	if quantity < 1 {
		quantity = 1
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	cart, err := s.orders.GetOrCreateOpen(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.orders.AddItem(ctx, cart.ID, product.ID, quantity); err != nil {
		return nil, err
	}
	return s.orders.GetOrCreateOpen(ctx, userID)
}

// RemoveItem decrements the product's line item by one, deleting it at
// zero. Missing cart or line item is a no-op.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.Order, error) {
	cart, err := s.orders.GetOpen(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.orders.GetOrCreateOpen(ctx, userID)
		}
		return nil, err
	}
	if err := s.orders.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	return s.orders.GetOrCreateOpen(ctx, userID)
}
