package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"storefront/internal/domain"
)

type stubOrderRepo struct {
	open         *domain.Order
	openErr      error
	checkoutErr  error
	lastOrderID  string
	lastTxnID    string
	checkoutRuns int
}

func (s *stubOrderRepo) GetOpen(_ context.Context, _ string) (*domain.Order, error) {
	return s.open, s.openErr
}

func (s *stubOrderRepo) Checkout(_ context.Context, orderID, transactionID string) error {
	s.checkoutRuns++
	s.lastOrderID = orderID
	s.lastTxnID = transactionID
	return s.checkoutErr
}

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func validShipping() ShippingInfo {
	return ShippingInfo{
		FullName: "Jane Doe",
		Address:  "1 Main St",
		City:     "Springfield",
		ZipCode:  "12345",
	}
}

func cartWithItems(id string) *domain.Order {
	pid := "p1"
	return &domain.Order{
		ID:    id,
		Items: []domain.OrderItem{{ProductID: &pid, Quantity: 2}},
	}
}

func TestValidateShippingReportsAllMissingFields(t *testing.T) {
	verr := ValidateShipping(ShippingInfo{City: "Springfield"})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	want := []string{"fullName", "address", "zipCode"}
	if len(verr.Fields) != len(want) {
		t.Fatalf("expected fields %v, got %v", want, verr.Fields)
	}
	for i, f := range want {
		if verr.Fields[i] != f {
			t.Fatalf("expected fields %v, got %v", want, verr.Fields)
		}
	}
}

func TestValidateShippingWhitespaceOnlyIsMissing(t *testing.T) {
	in := validShipping()
	in.ZipCode = "   "
	verr := ValidateShipping(in)
	if verr == nil || len(verr.Fields) != 1 || verr.Fields[0] != "zipCode" {
		t.Fatalf("expected zipCode to be flagged, got %v", verr)
	}
}

func TestCheckoutValidationGatesTransaction(t *testing.T) {
	repo := &stubOrderRepo{open: cartWithItems("o1")}
	svc := &Service{orders: repo, logger: discard()}
	_, err := svc.Checkout(context.Background(), "user", ShippingInfo{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.checkoutRuns != 0 {
		t.Fatal("checkout transaction must not run on invalid shipping")
	}
}

func TestCheckoutNoOpenOrderIsEmptyCart(t *testing.T) {
	svc := &Service{orders: &stubOrderRepo{openErr: domain.ErrNotFound}, logger: discard()}
	_, err := svc.Checkout(context.Background(), "user", validShipping())
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart, got %v", err)
	}
}

func TestCheckoutZeroItemsIsEmptyCart(t *testing.T) {
	repo := &stubOrderRepo{open: &domain.Order{ID: "o1"}}
	svc := &Service{orders: repo, logger: discard()}
	_, err := svc.Checkout(context.Background(), "user", validShipping())
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart, got %v", err)
	}
	if repo.checkoutRuns != 0 {
		t.Fatal("checkout transaction must not run on empty cart")
	}
}

func TestCheckoutSuccessReturnsOrderID(t *testing.T) {
	repo := &stubOrderRepo{open: cartWithItems("o42")}
	svc := &Service{orders: repo, logger: discard()}
	orderID, err := svc.Checkout(context.Background(), "user", validShipping())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != "o42" {
		t.Fatalf("expected order id o42, got %s", orderID)
	}
	if repo.lastOrderID != "o42" || repo.lastTxnID == "" {
		t.Fatalf("unexpected checkout call: order=%s txn=%q", repo.lastOrderID, repo.lastTxnID)
	}
}

func TestCheckoutOutOfStockPropagates(t *testing.T) {
	repo := &stubOrderRepo{
		open:        cartWithItems("o1"),
		checkoutErr: &domain.OutOfStockError{ProductName: "Pocket Widget"},
	}
	svc := &Service{orders: repo, logger: discard()}
	_, err := svc.Checkout(context.Background(), "user", validShipping())
	var oos *domain.OutOfStockError
	if !errors.As(err, &oos) || oos.ProductName != "Pocket Widget" {
		t.Fatalf("expected out of stock for Pocket Widget, got %v", err)
	}
}
