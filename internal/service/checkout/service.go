package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

// ValidationError reports malformed shipping input. Nothing runs
// transactionally when it is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid shipping fields: %s", strings.Join(e.Fields, ", "))
}

// ShippingInfo is the checkout form payload.
type ShippingInfo struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	ZipCode  string `json:"zipCode"`
}

// Service drives the open -> complete order transition.
type Service struct {
	orders orderRepo
	logger *log.Logger
}

type orderRepo interface {
	GetOpen(ctx context.Context, userID string) (*domain.Order, error)
	Checkout(ctx context.Context, orderID, transactionID string) error
}

func New(orders orderrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, logger: logger}
}

// ValidateShipping is a pure shape check on the shipping form.
func ValidateShipping(in ShippingInfo) *ValidationError {
	var missing []string
	if strings.TrimSpace(in.FullName) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(in.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(in.ZipCode) == "" {
		missing = append(missing, "zipCode")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Checkout validates shipping input, then atomically decrements stock
// for every line item and completes the order. Oversold items abort the
// whole operation with *domain.OutOfStockError, leaving the cart open
// and stock untouched. Returns the completed order's id.
func (s *Service) Checkout(ctx context.Context, userID string, shipping ShippingInfo) (string, error) {
	if verr := ValidateShipping(shipping); verr != nil {
		return "", verr
	}

	cart, err := s.orders.GetOpen(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrEmptyCart
		}
		return "", err
	}
	if len(cart.Items) == 0 {
		return "", domain.ErrEmptyCart
	}

	transactionID := uuid.NewString()
	if err := s.orders.Checkout(ctx, cart.ID, transactionID); err != nil {
		return "", err
	}
	s.logger.Printf("checkout: user_id=%s order_id=%s transaction_id=%s", userID, cart.ID, transactionID)
	return cart.ID, nil
}
