package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

type stubOrderRepo struct {
	open          *domain.Order
	openErr       error
	getOrCreate   []*domain.Order
	getOrCreateN  int
	addErr        error
	removeErr     error
	lastAddOrder  string
	lastAddProd   string
	lastAddQty    int
	lastRemoveOrd string
	lastRemovePrd string
	removeCalls   int
}

func (s *stubOrderRepo) GetOrCreateOpen(_ context.Context, _ string) (*domain.Order, error) {
	var res *domain.Order
	if len(s.getOrCreate) > 0 {
		idx := s.getOrCreateN
		if idx >= len(s.getOrCreate) {
			idx = len(s.getOrCreate) - 1
		}
		res = s.getOrCreate[idx]
	}
	s.getOrCreateN++
	return res, nil
}

func (s *stubOrderRepo) GetOpen(_ context.Context, _ string) (*domain.Order, error) {
	return s.open, s.openErr
}

func (s *stubOrderRepo) AddItem(_ context.Context, orderID, productID string, quantity int) error {
	s.lastAddOrder = orderID
	s.lastAddProd = productID
	s.lastAddQty = quantity
	return s.addErr
}

func (s *stubOrderRepo) RemoveItem(_ context.Context, orderID, productID string) error {
	s.removeCalls++
	s.lastRemoveOrd = orderID
	s.lastRemovePrd = productID
	return s.removeErr
}

type stubProductRepo struct {
	product *domain.Product
	err     error
	lastID  string
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.lastID = id
	return s.product, s.err
}

func TestGetCartCreatesLazily(t *testing.T) {
	expected := &domain.Order{ID: "o1"}
	svc := &Service{orders: &stubOrderRepo{getOrCreate: []*domain.Order{expected}}}
	got, err := svc.GetCart(context.Background(), "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("unexpected cart: %+v", got)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := &Service{orders: repo, products: &stubProductRepo{err: domain.ErrNotFound}}
	_, err := svc.AddItem(context.Background(), "user", "missing", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.lastAddOrder != "" {
		t.Fatalf("add should not have reached the repo")
	}
}

func TestAddItemIncrementsQuantity(t *testing.T) {
	cart := &domain.Order{ID: "o1"}
	repo := &stubOrderRepo{getOrCreate: []*domain.Order{cart}}
	products := &stubProductRepo{product: &domain.Product{ID: "p1", Name: "Mug"}}
	svc := &Service{orders: repo, products: products}

	got, err := svc.AddItem(context.Background(), "user", "p1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastAddOrder != "o1" || repo.lastAddProd != "p1" || repo.lastAddQty != 3 {
		t.Fatalf("unexpected add call: order=%s product=%s qty=%d", repo.lastAddOrder, repo.lastAddProd, repo.lastAddQty)
	}
	if got != cart {
		t.Fatalf("expected refreshed cart, got %+v", got)
	}
}

func TestAddItemCoercesQuantityToOne(t *testing.T) {
	repo := &stubOrderRepo{getOrCreate: []*domain.Order{{ID: "o1"}}}
	svc := &Service{orders: repo, products: &stubProductRepo{product: &domain.Product{ID: "p1"}}}
	if _, err := svc.AddItem(context.Background(), "user", "p1", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastAddQty != 1 {
		t.Fatalf("expected quantity 1, got %d", repo.lastAddQty)
	}
}

func TestRemoveItemWithoutOpenCartIsNoop(t *testing.T) {
	repo := &stubOrderRepo{openErr: domain.ErrNotFound, getOrCreate: []*domain.Order{{ID: "fresh"}}}
	svc := &Service{orders: repo}
	got, err := svc.RemoveItem(context.Background(), "user", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.removeCalls != 0 {
		t.Fatalf("remove should not have reached the repo")
	}
	if got == nil || got.ID != "fresh" {
		t.Fatalf("expected fresh cart, got %+v", got)
	}
}

func TestRemoveItemDelegates(t *testing.T) {
	repo := &stubOrderRepo{
		open:        &domain.Order{ID: "o1"},
		getOrCreate: []*domain.Order{{ID: "o1"}},
	}
	svc := &Service{orders: repo}
	if _, err := svc.RemoveItem(context.Background(), "user", "p9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastRemoveOrd != "o1" || repo.lastRemovePrd != "p9" {
		t.Fatalf("unexpected remove call: order=%s product=%s", repo.lastRemoveOrd, repo.lastRemovePrd)
	}
}

func TestRemoveItemRepoError(t *testing.T) {
	repo := &stubOrderRepo{open: &domain.Order{ID: "o1"}, removeErr: errors.New("boom")}
	svc := &Service{orders: repo}
	if _, err := svc.RemoveItem(context.Background(), "user", "p1"); err == nil || err.Error() != "boom" {
		t.Fatalf("expected repo error, got %v", err)
	}
}
