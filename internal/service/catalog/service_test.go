package catalog

import (
	"context"
	"testing"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

type stubProductRepo struct {
	products   []domain.Product
	total      int
	product    *domain.Product
	err        error
	lastFilter productrepo.Filter
}

func (s *stubProductRepo) List(_ context.Context, f productrepo.Filter) ([]domain.Product, int, error) {
	s.lastFilter = f
	return s.products, s.total, s.err
}

func (s *stubProductRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

type stubCategoryRepo struct {
	categories []domain.Category
	err        error
}

func (s *stubCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

func TestListProductsDefaultsPaging(t *testing.T) {
	repo := &stubProductRepo{total: 20}
	svc := &Service{products: repo}
	page, err := svc.ListProducts(context.Background(), ListParams{Page: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.Limit != DefaultPageSize || repo.lastFilter.Offset != 0 {
		t.Fatalf("unexpected filter: %+v", repo.lastFilter)
	}
	if page.Page != 1 || page.PageSize != DefaultPageSize || page.Total != 20 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
}

func TestListProductsComputesOffset(t *testing.T) {
	repo := &stubProductRepo{}
	svc := &Service{products: repo}
	if _, err := svc.ListProducts(context.Background(), ListParams{Page: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.Offset != 2*DefaultPageSize {
		t.Fatalf("expected offset %d, got %d", 2*DefaultPageSize, repo.lastFilter.Offset)
	}
}

func TestListProductsForwardsFilters(t *testing.T) {
	repo := &stubProductRepo{}
	svc := &Service{products: repo}
	_, err := svc.ListProducts(context.Background(), ListParams{
		Search:     "widget",
		CategoryID: "cat-1",
		Sort:       productrepo.SortPriceLow,
		Page:       1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := repo.lastFilter
	if f.Search != "widget" || f.CategoryID != "cat-1" || f.Sort != productrepo.SortPriceLow {
		t.Fatalf("unexpected filter: %+v", f)
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc := &Service{products: &stubProductRepo{err: domain.ErrNotFound}}
	if _, err := svc.GetProduct(context.Background(), "missing"); err != domain.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListCategories(t *testing.T) {
	svc := &Service{categories: &stubCategoryRepo{categories: []domain.Category{{ID: "c1", Name: "Gadgets"}}}}
	cats, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Gadgets" {
		t.Fatalf("unexpected categories: %+v", cats)
	}
}
