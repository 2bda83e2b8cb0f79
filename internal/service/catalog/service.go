package catalog

import (
	"context"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

// DefaultPageSize matches the storefront's product grid.
const DefaultPageSize = 8

type Service struct {
	products   productRepo
	categories categoryRepo
}

type productRepo interface {
	List(ctx context.Context, f productrepo.Filter) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type categoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
}

func New(products productrepo.Repository, categories categoryRepo) *Service {
	return &Service{products: products, categories: categories}
}

type ListParams struct {
	Search     string
	CategoryID string
	Sort       string
	Page       int
	PageSize   int
}

type ProductPage struct {
	Products []domain.Product `json:"products"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	Total    int              `json:"total"`
}

// ListProducts pages through the catalog with optional name search,
// category filter and price sorting.
func (s *Service) ListProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = DefaultPageSize
	}

	products, total, err := s.products.List(ctx, productrepo.Filter{
		Search:     params.Search,
		CategoryID: params.CategoryID,
		Sort:       params.Sort,
		Limit:      params.PageSize,
		Offset:     (params.Page - 1) * params.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return &ProductPage{
		Products: products,
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
	}, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}
