package product

import (
	"context"

	"storefront/internal/domain"
)

// Sort orders applied by List.
const (
	SortNewest    = ""
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
)

// Filter narrows and pages the product listing.
type Filter struct {
	Search     string
	CategoryID string
	Sort       string
	Limit      int
	Offset     int
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
